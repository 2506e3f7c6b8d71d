package handlers

import (
	"errors"
	"strconv"

	"swiftparcel/internal/core/domain"
	"swiftparcel/internal/core/services"
	"swiftparcel/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterOrTouch handles the public user upsert
// @Summary Register or touch a user
// @Description Insert a new user, or refresh last_log_in for an existing email
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.RegisterOrTouchInput true "User payload"
// @Success 200 {object} response.Response
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users [post]
func (h *UserHandler) RegisterOrTouch(c *fiber.Ctx) error {
	var input services.RegisterOrTouchInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.userService.RegisterOrTouch(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		default:
			return response.InternalServerError(c, "Failed to save user")
		}
	}

	if result.Inserted {
		return response.Created(c, "User created", result)
	}
	return response.Success(c, "User already exists", result)
}

// GetRole handles role lookup by email
// @Summary Get user role
// @Description Get the recognized role for an email
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} response.Response
// @Router /users/{email}/role [get]
func (h *UserHandler) GetRole(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return response.BadRequest(c, "Email is required")
	}

	role, err := h.userService.GetRole(c.Context(), email)
	if err != nil {
		return response.InternalServerError(c, "Failed to get role")
	}

	return response.Success(c, "Role retrieved successfully", fiber.Map{
		"email": email,
		"role":  role,
	})
}

// Search handles user search by email fragment (Admin only)
// @Summary Search users
// @Description Case-insensitive substring search on email (Admin only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email query string true "Email fragment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	fragment := c.Query("email")

	users, err := h.userService.Search(c.Context(), fragment)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Email query is required")
		}
		return response.InternalServerError(c, "Failed to search users")
	}

	return response.Success(c, "Users retrieved successfully", users)
}

// UpdateRoleRequest represents the role update payload
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole handles role changes (Admin only)
// @Summary Update user role
// @Description Set a user's role (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body UpdateRoleRequest true "New role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.userService.UpdateRole(c.Context(), uint(id), req.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update role")
		}
	}

	return response.Success(c, "Role updated successfully", fiber.Map{
		"id":   id,
		"role": req.Role,
	})
}
