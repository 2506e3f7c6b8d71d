package domain

import (
	"math"
	"strings"
)

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleRider, RoleAdmin:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of a parcel
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// DeliveryStatus represents the delivery lifecycle state of a parcel.
//
// State transitions:
//
//	pending ──> rider_assigned ──> in_transit ──> delivered
//	                                          └─> service_center_delivered
type DeliveryStatus string

const (
	DeliveryPending                DeliveryStatus = "pending"
	DeliveryRiderAssigned          DeliveryStatus = "rider_assigned"
	DeliveryInTransit              DeliveryStatus = "in_transit"
	DeliveryDelivered              DeliveryStatus = "delivered"
	DeliveryServiceCenterDelivered DeliveryStatus = "service_center_delivered"
)

// IsCompleted reports whether the status is a terminal delivery state
func (s DeliveryStatus) IsCompleted() bool {
	return s == DeliveryDelivered || s == DeliveryServiceCenterDelivered
}

// IsValidAdvance reports whether the status is a valid target for a
// rider-driven status update. Assignment and cash-out have their own flows.
func (s DeliveryStatus) IsValidAdvance() bool {
	return s == DeliveryInTransit || s == DeliveryDelivered
}

// CashedOutStatus represents whether a parcel's rider earning was settled
type CashedOutStatus string

const (
	NotCashedOut CashedOutStatus = "not_cashed_out"
	CashedOut    CashedOutStatus = "cashed_out"
)

// RiderStatus represents the application/activation state of a rider
type RiderStatus string

const (
	RiderPending     RiderStatus = "pending"
	RiderActive      RiderStatus = "active"
	RiderCancelled   RiderStatus = "cancelled"
	RiderDeactivated RiderStatus = "deactivated"
)

// IsValidUpdate reports whether the status is a valid target for the
// rider review flow. "pending" is the initial state and cannot be set back.
func (s RiderStatus) IsValidUpdate() bool {
	switch s {
	case RiderActive, RiderCancelled, RiderDeactivated:
		return true
	}
	return false
}

// WorkStatus represents whether a rider currently carries a parcel
type WorkStatus string

const (
	WorkIdle       WorkStatus = "idle"
	WorkInDelivery WorkStatus = "in_delivery"
)

// Earning rates applied at cash-out.
const (
	SameDistrictRate  = 0.8
	CrossDistrictRate = 0.3
)

// EarningFor computes the rider earning for a delivered parcel.
// Districts are compared case-insensitively; the result is rounded
// to the nearest whole unit.
func EarningFor(cost float64, senderDistrict, receiverDistrict string) float64 {
	rate := CrossDistrictRate
	if strings.EqualFold(senderDistrict, receiverDistrict) {
		rate = SameDistrictRate
	}
	return math.Round(cost * rate)
}
