package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/adapters/persistence/repositories"
	"swiftparcel/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParcelService owns the parcel lifecycle: creation, rider assignment,
// delivery status transitions, cash-out. This is the one invariant-bearing
// component; everything around it is data access.
//
// Consistency policy: a parcel weakly references its rider by id plus a
// cached name/email snapshot. Parcel+rider updates span two rows without a
// transaction; the parcel-side update is always the conditional one that
// decides the outcome, the rider-side update is best-effort and reconciled
// by the hourly sweep (see CronService).
type ParcelService struct {
	parcelRepo   repositories.ParcelRepository
	riderRepo    repositories.RiderRepository
	trackingRepo repositories.TrackingRepository
}

// NewParcelService creates a new parcel service
func NewParcelService(
	parcelRepo repositories.ParcelRepository,
	riderRepo repositories.RiderRepository,
	trackingRepo repositories.TrackingRepository,
) *ParcelService {
	return &ParcelService{
		parcelRepo:   parcelRepo,
		riderRepo:    riderRepo,
		trackingRepo: trackingRepo,
	}
}

// CreateParcelInput represents create parcel input
type CreateParcelInput struct {
	Title            string  `json:"title"`
	Type             string  `json:"type"`
	SenderName       string  `json:"sender_name"`
	SenderContact    string  `json:"sender_contact"`
	SenderDistrict   string  `json:"sender_district"`
	SenderAddress    string  `json:"sender_address"`
	ReceiverName     string  `json:"receiver_name"`
	ReceiverContact  string  `json:"receiver_contact"`
	ReceiverDistrict string  `json:"receiver_district"`
	ReceiverAddress  string  `json:"receiver_address"`
	Cost             float64 `json:"cost"`
}

// Create validates and stores a new parcel for the authenticated creator
func (s *ParcelService) Create(ctx context.Context, createdBy string, input *CreateParcelInput) (*models.Parcel, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.SenderDistrict == "" || input.ReceiverDistrict == "" {
		return nil, fmt.Errorf("%w: sender and receiver district are required", domain.ErrInvalidInput)
	}
	if input.Cost <= 0 {
		return nil, fmt.Errorf("%w: cost must be positive", domain.ErrInvalidInput)
	}

	parcel := &models.Parcel{
		TrackingID:       uuid.NewString(),
		CreatedBy:        createdBy,
		Title:            input.Title,
		Type:             input.Type,
		SenderName:       input.SenderName,
		SenderContact:    input.SenderContact,
		SenderDistrict:   input.SenderDistrict,
		SenderAddress:    input.SenderAddress,
		ReceiverName:     input.ReceiverName,
		ReceiverContact:  input.ReceiverContact,
		ReceiverDistrict: input.ReceiverDistrict,
		ReceiverAddress:  input.ReceiverAddress,
		Cost:             input.Cost,
		PaymentStatus:    string(domain.PaymentUnpaid),
		DeliveryStatus:   string(domain.DeliveryPending),
		CashedOutStatus:  string(domain.NotCashedOut),
	}

	if err := s.parcelRepo.Create(ctx, parcel); err != nil {
		return nil, err
	}

	s.appendEvent(ctx, parcel, string(domain.DeliveryPending), "Parcel created", createdBy)

	return parcel, nil
}

// GetByID returns a single parcel
func (s *ParcelService) GetByID(ctx context.Context, id uint) (*models.Parcel, error) {
	parcel, err := s.parcelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrParcelNotFound
		}
		return nil, err
	}
	return parcel, nil
}

// List lists parcels newest first, optionally filtered by creator email
func (s *ParcelService) List(ctx context.Context, createdBy string, offset, limit int) ([]*models.Parcel, int64, error) {
	return s.parcelRepo.List(ctx, createdBy, offset, limit)
}

// ListForRider lists a rider's open assignments (rider_assigned, in_transit)
func (s *ParcelService) ListForRider(ctx context.Context, riderEmail string) ([]*models.Parcel, error) {
	statuses := []string{
		string(domain.DeliveryRiderAssigned),
		string(domain.DeliveryInTransit),
	}
	return s.parcelRepo.ListByRiderEmail(ctx, riderEmail, statuses)
}

// ListCompletedForRider lists a rider's completed deliveries
func (s *ParcelService) ListCompletedForRider(ctx context.Context, riderEmail string) ([]*models.Parcel, error) {
	statuses := []string{
		string(domain.DeliveryDelivered),
		string(domain.DeliveryServiceCenterDelivered),
	}
	return s.parcelRepo.ListByRiderEmail(ctx, riderEmail, statuses)
}

// Delete removes a parcel
func (s *ParcelService) Delete(ctx context.Context, id uint) error {
	affected, err := s.parcelRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrParcelNotFound
	}
	return nil
}

// Assign puts a pending parcel in the hands of an active rider.
//
// The parcel-side update is conditional on the parcel still being pending,
// so concurrent assigns resolve to exactly one winner. The rider-side
// work_status flip is a second document update with no rollback; on failure
// the assignment stands and the sweep restores the rider later.
func (s *ParcelService) Assign(ctx context.Context, parcelID, riderID uint) (*models.Parcel, error) {
	parcel, err := s.GetByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	rider, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRiderNotFound
		}
		return nil, err
	}
	if rider.Status != string(domain.RiderActive) {
		return nil, domain.ErrRiderNotActive
	}

	now := time.Now()
	snapshot := repositories.RiderSnapshot{ID: rider.ID, Name: rider.Name, Email: rider.Email}
	affected, err := s.parcelRepo.AssignRider(ctx, parcelID, snapshot, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrParcelNotPending
	}

	if err := s.riderRepo.UpdateWorkStatus(ctx, rider.ID, string(domain.WorkInDelivery)); err != nil {
		log.Printf("⚠️ Failed to flip rider %d work status after assigning parcel %d: %v", rider.ID, parcelID, err)
	}

	parcel.DeliveryStatus = string(domain.DeliveryRiderAssigned)
	parcel.AssignedRiderID = &rider.ID
	parcel.AssignedRiderName = rider.Name
	parcel.AssignedRiderEmail = rider.Email
	parcel.AssignedAt = &now

	s.appendEvent(ctx, parcel, string(domain.DeliveryRiderAssigned),
		fmt.Sprintf("Rider %s assigned", rider.Name), rider.Email)

	return parcel, nil
}

// UpdateStatus advances the delivery status to in_transit or delivered.
// Callers are expected to request forward-only transitions; re-issuing the
// current status is an idempotent no-op. On delivered the rider goes back
// to idle (best-effort second document update).
func (s *ParcelService) UpdateStatus(ctx context.Context, parcelID uint, status string) (*models.Parcel, error) {
	target := domain.DeliveryStatus(status)
	if !target.IsValidAdvance() {
		return nil, domain.ErrInvalidTransition
	}

	parcel, err := s.GetByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	affected, err := s.parcelRepo.UpdateDeliveryStatus(ctx, parcelID, status, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Already in the requested status; nothing changed.
		return parcel, nil
	}

	parcel.DeliveryStatus = status
	switch target {
	case domain.DeliveryInTransit:
		parcel.InTransitAt = &now
	case domain.DeliveryDelivered:
		parcel.DeliveredAt = &now
	}

	if target == domain.DeliveryDelivered && parcel.IsAssigned() {
		if err := s.riderRepo.UpdateWorkStatus(ctx, *parcel.AssignedRiderID, string(domain.WorkIdle)); err != nil {
			log.Printf("⚠️ Failed to idle rider %d after delivering parcel %d: %v", *parcel.AssignedRiderID, parcelID, err)
		}
	}

	s.appendEvent(ctx, parcel, status, "Delivery status updated", parcel.AssignedRiderEmail)

	return parcel, nil
}

// CashOutResult reports the outcome of a cash-out
type CashOutResult struct {
	ParcelID uint    `json:"parcel_id"`
	RiderID  *uint   `json:"rider_id,omitempty"`
	Earning  float64 `json:"earning"`
}

// CashOut settles the rider earning for a parcel, at most once.
//
// The cashed_out_status flip is a single conditional update keyed on the
// pre-cashed-out state. Only the caller whose update reports a change may
// credit the rider, so concurrent cash-outs of the same parcel credit
// exactly once. A parcel with no assigned rider still cashes out, but no
// earning is credited (source behavior, kept deliberately).
func (s *ParcelService) CashOut(ctx context.Context, parcelID uint) (*CashOutResult, error) {
	parcel, err := s.GetByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	affected, err := s.parcelRepo.MarkCashedOut(ctx, parcelID, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrAlreadyCashedOut
	}

	result := &CashOutResult{ParcelID: parcelID}
	if !parcel.IsAssigned() {
		return result, nil
	}

	earning := domain.EarningFor(parcel.Cost, parcel.SenderDistrict, parcel.ReceiverDistrict)
	if err := s.riderRepo.IncrementEarnings(ctx, *parcel.AssignedRiderID, earning); err != nil {
		// The parcel is cashed out but the credit failed; surface it so
		// the caller can reconcile instead of hiding the inconsistency.
		return nil, fmt.Errorf("%w: parcel cashed out but rider credit failed: %v", domain.ErrInternalServer, err)
	}

	result.RiderID = parcel.AssignedRiderID
	result.Earning = earning
	return result, nil
}

// appendEvent writes a tracking event for a workflow transition. History is
// best-effort: a failed append never fails the transition that caused it.
func (s *ParcelService) appendEvent(ctx context.Context, parcel *models.Parcel, status, message, actor string) {
	event := &models.TrackingEvent{
		TrackingID: parcel.TrackingID,
		ParcelID:   parcel.ID,
		Status:     status,
		Message:    message,
		UpdatedBy:  actor,
	}
	if err := s.trackingRepo.Create(ctx, event); err != nil {
		log.Printf("⚠️ Failed to append tracking event for parcel %d: %v", parcel.ID, err)
	}
}
