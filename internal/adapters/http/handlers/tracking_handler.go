package handlers

import (
	"errors"

	"swiftparcel/internal/adapters/http/middleware"
	"swiftparcel/internal/core/domain"
	"swiftparcel/internal/core/services"
	"swiftparcel/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles tracking log endpoints
type TrackingHandler struct {
	trackingService *services.TrackingService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(trackingService *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// Append handles manual tracking updates
// @Summary Append tracking event
// @Description Append an event to a parcel's tracking log
// @Tags Trackings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AppendInput true "Tracking event"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /trackings [post]
func (h *TrackingHandler) Append(c *fiber.Ctx) error {
	var input services.AppendInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.UpdatedBy == "" {
		input.UpdatedBy, _ = middleware.Principal(c)
	}

	event, err := h.trackingService.Append(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "All fields are required")
		}
		return response.InternalServerError(c, "Failed to save tracking update")
	}

	return response.Created(c, "Tracking update saved successfully", event)
}

// History handles tracking log lookup
// @Summary Tracking history
// @Description Get the event log for a tracking id, oldest first
// @Tags Trackings
// @Produce json
// @Security BearerAuth
// @Param trackingId path string true "Tracking ID"
// @Success 200 {object} response.Response
// @Router /trackings/{trackingId} [get]
func (h *TrackingHandler) History(c *fiber.Ctx) error {
	trackingID := c.Params("trackingId")

	events, err := h.trackingService.History(c.Context(), trackingID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Tracking ID is required")
		}
		return response.InternalServerError(c, "Failed to fetch tracking history")
	}

	return response.Success(c, "Tracking history retrieved successfully", events)
}
