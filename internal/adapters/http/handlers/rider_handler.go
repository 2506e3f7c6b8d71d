package handlers

import (
	"errors"
	"strconv"

	"swiftparcel/internal/adapters/http/middleware"
	"swiftparcel/internal/core/domain"
	"swiftparcel/internal/core/services"
	"swiftparcel/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RiderHandler handles rider endpoints
type RiderHandler struct {
	riderService  *services.RiderService
	parcelService *services.ParcelService
}

// NewRiderHandler creates a new rider handler
func NewRiderHandler(riderService *services.RiderService, parcelService *services.ParcelService) *RiderHandler {
	return &RiderHandler{
		riderService:  riderService,
		parcelService: parcelService,
	}
}

// Apply handles rider applications
// @Summary Apply as rider
// @Description Submit a rider application (starts in pending status)
// @Tags Riders
// @Accept json
// @Produce json
// @Param body body services.ApplyInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /riders [post]
func (h *RiderHandler) Apply(c *fiber.Ctx) error {
	var input services.ApplyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rider, err := h.riderService.Apply(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to save rider application")
	}

	return response.Created(c, "Rider application submitted", rider)
}

// List handles listing all riders (Admin only)
// @Summary List riders
// @Description List all riders, newest first (Admin only)
// @Tags Riders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /riders [get]
func (h *RiderHandler) List(c *fiber.Ctx) error {
	riders, err := h.riderService.List(c.Context(), "")
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch riders")
	}
	return response.Success(c, "Riders retrieved successfully", riders)
}

// ListPending handles listing pending riders (Admin only)
// @Summary List pending riders
// @Description List riders awaiting review, newest first (Admin only)
// @Tags Riders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /riders/pending [get]
func (h *RiderHandler) ListPending(c *fiber.Ctx) error {
	riders, err := h.riderService.List(c.Context(), string(domain.RiderPending))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch pending riders")
	}
	return response.Success(c, "Pending riders retrieved successfully", riders)
}

// ListActive handles listing active riders (Admin only)
// @Summary List active riders
// @Description List active riders, newest first (Admin only)
// @Tags Riders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /riders/active [get]
func (h *RiderHandler) ListActive(c *fiber.Ctx) error {
	riders, err := h.riderService.List(c.Context(), string(domain.RiderActive))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch active riders")
	}
	return response.Success(c, "Active riders retrieved successfully", riders)
}

// UpdateRiderStatusRequest represents the rider status payload
type UpdateRiderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles the rider review workflow (Admin only)
// @Summary Update rider status
// @Description Set rider status to active, cancelled or deactivated (Admin only)
// @Tags Riders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rider ID"
// @Param body body UpdateRiderStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /riders/{id} [patch]
func (h *RiderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid rider ID")
	}

	var req UpdateRiderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rider, err := h.riderService.SetStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRiderStatus):
			return response.BadRequest(c, "Invalid status")
		case errors.Is(err, domain.ErrRiderNotFound):
			return response.NotFound(c, "Rider not found")
		default:
			return response.InternalServerError(c, "Failed to update rider status")
		}
	}

	return response.Success(c, "Rider status updated", rider)
}

// MyParcels handles a rider's open assignments (Rider only)
// @Summary Rider's open parcels
// @Description List the authenticated rider's assigned and in-transit parcels
// @Tags Riders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /riders/parcels [get]
func (h *RiderHandler) MyParcels(c *fiber.Ctx) error {
	authEmail, _ := middleware.Principal(c)

	parcels, err := h.parcelService.ListForRider(c.Context(), authEmail)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch parcels")
	}
	return response.Success(c, "Parcels retrieved successfully", parcels)
}

// MyCompletedParcels handles a rider's completed deliveries (Rider only)
// @Summary Rider's completed parcels
// @Description List the authenticated rider's delivered parcels
// @Tags Riders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /riders/parcels/completed [get]
func (h *RiderHandler) MyCompletedParcels(c *fiber.Ctx) error {
	authEmail, _ := middleware.Principal(c)

	parcels, err := h.parcelService.ListCompletedForRider(c.Context(), authEmail)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch parcels")
	}
	return response.Success(c, "Completed parcels retrieved successfully", parcels)
}
