package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/adapters/persistence/repositories"
	"swiftparcel/internal/core/domain"

	"gorm.io/gorm"
)

// RiderService handles rider applications and the activation workflow
type RiderService struct {
	riderRepo repositories.RiderRepository
	userRepo  repositories.UserRepository
}

// NewRiderService creates a new rider service
func NewRiderService(riderRepo repositories.RiderRepository, userRepo repositories.UserRepository) *RiderService {
	return &RiderService{
		riderRepo: riderRepo,
		userRepo:  userRepo,
	}
}

// ApplyInput represents a rider application
type ApplyInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	District  string `json:"district"`
	NID       string `json:"nid"`
	BikeBrand string `json:"bike_brand"`
	BikeRegNo string `json:"bike_registration"`
}

// Apply stores a new rider application in pending status
func (s *RiderService) Apply(ctx context.Context, input *ApplyInput) (*models.Rider, error) {
	if input.Name == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}

	rider := &models.Rider{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		District:   input.District,
		NID:        input.NID,
		BikeBrand:  input.BikeBrand,
		BikeRegNo:  input.BikeRegNo,
		Status:     string(domain.RiderPending),
		WorkStatus: string(domain.WorkIdle),
	}

	if err := s.riderRepo.Create(ctx, rider); err != nil {
		return nil, err
	}
	return rider, nil
}

// GetByID returns a single rider
func (s *RiderService) GetByID(ctx context.Context, id uint) (*models.Rider, error) {
	rider, err := s.riderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRiderNotFound
		}
		return nil, err
	}
	return rider, nil
}

// List lists riders, optionally filtered by status, newest first
func (s *RiderService) List(ctx context.Context, status string) ([]*models.Rider, error) {
	if status == "" {
		return s.riderRepo.List(ctx)
	}
	return s.riderRepo.ListByStatus(ctx, status)
}

// SetStatus moves a rider through the review workflow.
//
// Activating a rider promotes the matching user account to the rider role;
// deactivating demotes it back to user. The user record is matched by the
// rider's email and may not exist yet, in which case the sync is a no-op. This
// is a best-effort cross-entity denormalization, not a transaction.
func (s *RiderService) SetStatus(ctx context.Context, id uint, status string) (*models.Rider, error) {
	target := domain.RiderStatus(status)
	if !target.IsValidUpdate() {
		return nil, domain.ErrInvalidRiderStatus
	}

	rider, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	affected, err := s.riderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 && rider.Status != status {
		return nil, domain.ErrRiderNotFound
	}
	rider.Status = status

	switch target {
	case domain.RiderActive:
		s.syncUserRole(ctx, rider.Email, string(domain.RoleRider))
	case domain.RiderDeactivated:
		s.syncUserRole(ctx, rider.Email, string(domain.RoleUser))
	}

	return rider, nil
}

func (s *RiderService) syncUserRole(ctx context.Context, email, role string) {
	affected, err := s.userRepo.UpdateRoleByEmail(ctx, email, role)
	if err != nil {
		log.Printf("⚠️ Failed to sync role %s for user %s: %v", role, email, err)
		return
	}
	if affected == 0 {
		// No user record for this rider yet; the role is picked up when
		// the user registers.
		log.Printf("No user record for rider %s, role sync skipped", email)
	}
}
