package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternalServer = errors.New("internal server error")
)

// Parcel lifecycle errors
var (
	ErrParcelNotFound    = errors.New("parcel not found")
	ErrParcelNotPending  = errors.New("parcel is not pending assignment")
	ErrInvalidTransition = errors.New("invalid delivery status")
	ErrAlreadyPaid       = errors.New("parcel not found or already paid")
	ErrAlreadyCashedOut  = errors.New("parcel already cashed out")
)

// Rider errors
var (
	ErrRiderNotFound      = errors.New("rider not found")
	ErrRiderNotActive     = errors.New("rider is not active")
	ErrInvalidRiderStatus = errors.New("invalid rider status")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)
