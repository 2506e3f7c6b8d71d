package handlers

import (
	"errors"

	"swiftparcel/internal/adapters/http/middleware"
	"swiftparcel/internal/core/domain"
	"swiftparcel/internal/core/services"
	"swiftparcel/internal/pkg/pagination"
	"swiftparcel/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List handles payment history lookup
// @Summary List payments
// @Description List payments newest first; non-admins see only their own
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param email query string false "Payer email filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	authEmail, _ := middleware.Principal(c)
	email := c.Query("email")

	// The email filter must match the authenticated identity unless admin.
	if !middleware.IsAdmin(c) {
		if email != "" && email != authEmail {
			return response.Forbidden(c, "You can only view your own payments")
		}
		email = authEmail
	}

	params := pagination.GetParams(c)
	payments, total, err := h.paymentService.List(c.Context(), email, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch payments")
	}

	return response.Success(c, "Payments retrieved successfully", pagination.NewResponse(payments, params, total))
}

// Record handles payment confirmation
// @Summary Record payment
// @Description Mark a parcel paid and append the payment history record
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RecordPaymentInput true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var input services.RecordPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Email == "" {
		input.Email, _ = middleware.Principal(c)
	}

	payment, err := h.paymentService.RecordPayment(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Missing required payment data")
		case errors.Is(err, domain.ErrAlreadyPaid):
			return response.Conflict(c, "Parcel not found or already marked as paid")
		default:
			return response.InternalServerError(c, "Failed to record payment")
		}
	}

	return response.Created(c, "Payment recorded successfully", payment)
}

// CreateIntentRequest represents the payment intent payload
type CreateIntentRequest struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
}

// CreateIntent handles payment intent creation
// @Summary Create payment intent
// @Description Create a gateway payment intent and return its client secret
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateIntentRequest true "Amount in minor units"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments/create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var req CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	secret, err := h.paymentService.CreateIntent(c.Context(), req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Amount must be positive")
		}
		return response.InternalServerError(c, "Failed to create payment intent")
	}

	return response.Success(c, "Payment intent created", fiber.Map{
		"clientSecret": secret,
	})
}
