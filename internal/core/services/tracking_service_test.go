package services_test

import (
	"context"
	"testing"

	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/core/domain"
	"swiftparcel/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTrackingAppend_RequiresAllFields(t *testing.T) {
	trackingRepo := new(MockTrackingRepository)
	svc := services.NewTrackingService(trackingRepo)

	inputs := []*services.AppendInput{
		{},
		{TrackingID: "trk-1", ParcelID: 1, Status: "in_transit", Message: "Left hub"},           // no updated_by
		{TrackingID: "trk-1", ParcelID: 1, Status: "in_transit", UpdatedBy: "r@example.com"},    // no message
		{TrackingID: "trk-1", Status: "in_transit", Message: "m", UpdatedBy: "r@example.com"},   // no parcel id
		{ParcelID: 1, Status: "in_transit", Message: "m", UpdatedBy: "r@example.com"},           // no tracking id
	}

	for _, input := range inputs {
		_, err := svc.Append(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	trackingRepo.AssertNotCalled(t, "Create")
}

func TestTrackingAppend_StoresEvent(t *testing.T) {
	trackingRepo := new(MockTrackingRepository)
	svc := services.NewTrackingService(trackingRepo)

	trackingRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.TrackingEvent) bool {
		return e.TrackingID == "trk-1" && e.Status == "in_transit" && e.Location == "Dhaka Hub"
	})).Return(nil)

	event, err := svc.Append(context.Background(), &services.AppendInput{
		TrackingID: "trk-1",
		ParcelID:   1,
		Status:     "in_transit",
		Message:    "Left hub",
		Location:   "Dhaka Hub",
		UpdatedBy:  "r@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "trk-1", event.TrackingID)
}

func TestTrackingHistory_RequiresTrackingID(t *testing.T) {
	trackingRepo := new(MockTrackingRepository)
	svc := services.NewTrackingService(trackingRepo)

	_, err := svc.History(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTrackingHistory_ReturnsEventsInOrder(t *testing.T) {
	trackingRepo := new(MockTrackingRepository)
	svc := services.NewTrackingService(trackingRepo)

	trackingRepo.On("ListByTrackingID", mock.Anything, "trk-1").Return([]*models.TrackingEvent{
		{ID: 1, Status: "pending"},
		{ID: 2, Status: "rider_assigned"},
	}, nil)

	events, err := svc.History(context.Background(), "trk-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "pending", events[0].Status)
}
