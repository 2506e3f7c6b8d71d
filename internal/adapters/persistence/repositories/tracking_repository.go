package repositories

import (
	"context"

	"swiftparcel/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// trackingRepository implements TrackingRepository interface
type trackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository creates a new tracking repository
func NewTrackingRepository(db *gorm.DB) TrackingRepository {
	return &trackingRepository{db: db}
}

// Create appends a tracking event
func (r *trackingRepository) Create(ctx context.Context, event *models.TrackingEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByTrackingID lists the event history for a tracking id, oldest first
func (r *trackingRepository) ListByTrackingID(ctx context.Context, trackingID string) ([]*models.TrackingEvent, error) {
	var events []*models.TrackingEvent
	err := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID).
		Order("timestamp ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
