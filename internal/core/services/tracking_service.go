package services

import (
	"context"
	"fmt"

	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/adapters/persistence/repositories"
	"swiftparcel/internal/core/domain"
)

// TrackingService handles the append-only tracking log
type TrackingService struct {
	trackingRepo repositories.TrackingRepository
}

// NewTrackingService creates a new tracking service
func NewTrackingService(trackingRepo repositories.TrackingRepository) *TrackingService {
	return &TrackingService{trackingRepo: trackingRepo}
}

// AppendInput represents a manual tracking update
type AppendInput struct {
	TrackingID string `json:"tracking_id"`
	ParcelID   uint   `json:"parcel_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Location   string `json:"location"`
	UpdatedBy  string `json:"updated_by"`
}

// Append validates and stores a tracking event
func (s *TrackingService) Append(ctx context.Context, input *AppendInput) (*models.TrackingEvent, error) {
	if input.TrackingID == "" || input.ParcelID == 0 || input.Status == "" ||
		input.Message == "" || input.UpdatedBy == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}

	event := &models.TrackingEvent{
		TrackingID: input.TrackingID,
		ParcelID:   input.ParcelID,
		Status:     input.Status,
		Message:    input.Message,
		Location:   input.Location,
		UpdatedBy:  input.UpdatedBy,
	}
	if err := s.trackingRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// History returns the event log for a tracking id, oldest first
func (s *TrackingService) History(ctx context.Context, trackingID string) ([]*models.TrackingEvent, error) {
	if trackingID == "" {
		return nil, fmt.Errorf("%w: tracking id is required", domain.ErrInvalidInput)
	}
	return s.trackingRepo.ListByTrackingID(ctx, trackingID)
}
