package handlers

import (
	"errors"
	"strconv"

	"swiftparcel/internal/adapters/http/middleware"
	"swiftparcel/internal/core/domain"
	"swiftparcel/internal/core/services"
	"swiftparcel/internal/pkg/pagination"
	"swiftparcel/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ParcelHandler handles parcel lifecycle endpoints
type ParcelHandler struct {
	parcelService *services.ParcelService
}

// NewParcelHandler creates a new parcel handler
func NewParcelHandler(parcelService *services.ParcelService) *ParcelHandler {
	return &ParcelHandler{parcelService: parcelService}
}

// List handles parcel listing
// @Summary List parcels
// @Description List parcels newest first; non-admins see only their own
// @Tags Parcels
// @Produce json
// @Security BearerAuth
// @Param email query string false "Creator email filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /parcels [get]
func (h *ParcelHandler) List(c *fiber.Ctx) error {
	authEmail, _ := middleware.Principal(c)
	email := c.Query("email")

	// Non-admins may only list their own parcels.
	if !middleware.IsAdmin(c) {
		if email != "" && email != authEmail {
			return response.Forbidden(c, "You can only view your own parcels")
		}
		email = authEmail
	}

	params := pagination.GetParams(c)
	parcels, total, err := h.parcelService.List(c.Context(), email, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch parcels")
	}

	return response.Success(c, "Parcels retrieved successfully", pagination.NewResponse(parcels, params, total))
}

// Get handles fetching a single parcel
// @Summary Get parcel
// @Description Get a parcel by ID
// @Tags Parcels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parcel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /parcels/{id} [get]
func (h *ParcelHandler) Get(c *fiber.Ctx) error {
	id, err := parcelID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid parcel ID")
	}

	parcel, err := h.parcelService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrParcelNotFound) {
			return response.NotFound(c, "Parcel not found")
		}
		return response.InternalServerError(c, "Failed to fetch parcel")
	}

	return response.Success(c, "Parcel retrieved successfully", parcel)
}

// Create handles parcel creation
// @Summary Create parcel
// @Description Create a new parcel for the authenticated user
// @Tags Parcels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateParcelInput true "Parcel data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /parcels [post]
func (h *ParcelHandler) Create(c *fiber.Ctx) error {
	var input services.CreateParcelInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	authEmail, _ := middleware.Principal(c)
	parcel, err := h.parcelService.Create(c.Context(), authEmail, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to save parcel")
	}

	return response.Created(c, "Parcel created successfully", parcel)
}

// Delete handles parcel deletion (owner or admin)
// @Summary Delete parcel
// @Description Delete a parcel; only its creator or an admin may do this
// @Tags Parcels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parcel ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /parcels/{id} [delete]
func (h *ParcelHandler) Delete(c *fiber.Ctx) error {
	id, err := parcelID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid parcel ID")
	}

	if !middleware.IsAdmin(c) {
		parcel, err := h.parcelService.GetByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrParcelNotFound) {
				return response.NotFound(c, "Parcel not found")
			}
			return response.InternalServerError(c, "Failed to fetch parcel")
		}
		authEmail, _ := middleware.Principal(c)
		if parcel.CreatedBy != authEmail {
			return response.Forbidden(c, "You can only delete your own parcels")
		}
	}

	if err := h.parcelService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrParcelNotFound) {
			return response.NotFound(c, "Parcel not found")
		}
		return response.InternalServerError(c, "Failed to delete parcel")
	}

	return response.Success(c, "Parcel deleted successfully", fiber.Map{"deleted_count": 1})
}

// AssignRequest represents the assign payload
type AssignRequest struct {
	RiderID uint `json:"rider_id"`
}

// Assign handles rider assignment (Admin only)
// @Summary Assign rider
// @Description Assign an active rider to a pending parcel (Admin only)
// @Tags Parcels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parcel ID"
// @Param body body AssignRequest true "Rider ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /parcels/{id}/assign [patch]
func (h *ParcelHandler) Assign(c *fiber.Ctx) error {
	id, err := parcelID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid parcel ID")
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil || req.RiderID == 0 {
		return response.BadRequest(c, "Rider ID is required")
	}

	parcel, err := h.parcelService.Assign(c.Context(), id, req.RiderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParcelNotFound):
			return response.NotFound(c, "Parcel not found")
		case errors.Is(err, domain.ErrRiderNotFound):
			return response.NotFound(c, "Rider not found")
		case errors.Is(err, domain.ErrRiderNotActive):
			return response.BadRequest(c, "Rider is not active")
		case errors.Is(err, domain.ErrParcelNotPending):
			return response.Conflict(c, "Parcel is not pending assignment")
		default:
			return response.InternalServerError(c, "Failed to assign rider")
		}
	}

	return response.Success(c, "Rider assigned successfully", parcel)
}

// UpdateStatusRequest represents the status update payload
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles delivery status updates
// @Summary Update delivery status
// @Description Advance a parcel to in_transit or delivered
// @Tags Parcels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parcel ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /parcels/{id}/status [patch]
func (h *ParcelHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parcelID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid parcel ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.requireAssignedRiderOrAdmin(c, id); err != nil {
		return err
	}

	parcel, err := h.parcelService.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.BadRequest(c, "Invalid delivery status")
		case errors.Is(err, domain.ErrParcelNotFound):
			return response.NotFound(c, "Parcel not found")
		default:
			return response.InternalServerError(c, "Failed to update status")
		}
	}

	return response.Success(c, "Delivery status updated", parcel)
}

// CashOut handles rider earning settlement
// @Summary Cash out parcel
// @Description Settle the rider earning for a parcel, at most once
// @Tags Parcels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parcel ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /parcels/{id}/cashout [patch]
func (h *ParcelHandler) CashOut(c *fiber.Ctx) error {
	id, err := parcelID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid parcel ID")
	}

	if err := h.requireAssignedRiderOrAdmin(c, id); err != nil {
		return err
	}

	result, err := h.parcelService.CashOut(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParcelNotFound):
			return response.NotFound(c, "Parcel not found")
		case errors.Is(err, domain.ErrAlreadyCashedOut):
			return response.Conflict(c, "Parcel already cashed out")
		default:
			return response.InternalServerError(c, "Failed to cash out")
		}
	}

	return response.Success(c, "Cashed out successfully", result)
}

// requireAssignedRiderOrAdmin admits admins, and riders only for parcels
// that carry their own assignment snapshot.
func (h *ParcelHandler) requireAssignedRiderOrAdmin(c *fiber.Ctx, parcelID uint) error {
	if middleware.IsAdmin(c) {
		return nil
	}

	authEmail, role := middleware.Principal(c)
	if role != string(domain.RoleRider) {
		return response.Forbidden(c, "Only the assigned rider or an admin can do this")
	}

	parcel, err := h.parcelService.GetByID(c.Context(), parcelID)
	if err != nil {
		if errors.Is(err, domain.ErrParcelNotFound) {
			return response.NotFound(c, "Parcel not found")
		}
		return response.InternalServerError(c, "Failed to fetch parcel")
	}
	if parcel.AssignedRiderEmail != authEmail {
		return response.Forbidden(c, "You are not assigned to this parcel")
	}
	return nil
}

func parcelID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
