package services

import (
	"context"
	"fmt"

	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/adapters/persistence/repositories"
	"swiftparcel/internal/config"
	"swiftparcel/internal/core/domain"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

// IntentCreator creates a payment intent with the gateway and returns its
// client secret. Wrapped in an interface so tests run without the gateway.
type IntentCreator func(amount int64, currency string) (string, error)

// PaymentService handles payment recording and gateway intents
type PaymentService struct {
	paymentRepo  repositories.PaymentRepository
	parcelRepo   repositories.ParcelRepository
	createIntent IntentCreator
	cfg          *config.Config
}

// NewPaymentService creates a new payment service backed by the Stripe
// payment-intent API
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	parcelRepo repositories.ParcelRepository,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		parcelRepo:   parcelRepo,
		createIntent: stripeIntent,
		cfg:          cfg,
	}
}

// RecordPaymentInput represents the payment confirmation payload
type RecordPaymentInput struct {
	ParcelID      uint    `json:"parcel_id"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id"`
}

// RecordPayment marks the parcel paid and appends a payment record.
//
// The paid flip is a single conditional update (unpaid -> paid); losing
// that compare-and-set means the parcel is missing or was already paid,
// and no duplicate history row is written.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*models.Payment, error) {
	if input.ParcelID == 0 || input.Email == "" || input.Amount <= 0 ||
		input.PaymentMethod == "" || input.TransactionID == "" {
		return nil, fmt.Errorf("%w: missing required payment data", domain.ErrInvalidInput)
	}

	affected, err := s.parcelRepo.MarkPaid(ctx, input.ParcelID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrAlreadyPaid
	}

	payment := &models.Payment{
		ParcelID:      input.ParcelID,
		Email:         input.Email,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		TransactionID: input.TransactionID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// List lists payments newest first, optionally filtered by payer email
func (s *PaymentService) List(ctx context.Context, email string, offset, limit int) ([]*models.Payment, int64, error) {
	return s.paymentRepo.ListByEmail(ctx, email, offset, limit)
}

// CreateIntent creates a gateway payment intent for the amount in minor
// units and returns its client secret
func (s *PaymentService) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if currency == "" {
		currency = s.cfg.Payment.Currency
	}

	secret, err := s.createIntent(amount, currency)
	if err != nil {
		return "", fmt.Errorf("%w: payment gateway: %v", domain.ErrInternalServer, err)
	}
	return secret, nil
}

// stripeIntent is the production IntentCreator. stripe.Key is set once at
// startup from config.
func stripeIntent(amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
