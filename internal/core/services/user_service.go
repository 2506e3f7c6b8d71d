package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/adapters/persistence/repositories"
	"swiftparcel/internal/core/domain"

	"gorm.io/gorm"
)

// SearchLimit caps the number of results from the email search
const SearchLimit = 10

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterOrTouchInput represents the register-or-touch payload
type RegisterOrTouchInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// RegisterOrTouchOutput reports whether a new user was inserted
type RegisterOrTouchOutput struct {
	User     *models.UserResponse `json:"user"`
	Inserted bool                 `json:"inserted"`
}

// RegisterOrTouch is an upsert with asymmetric fields: an unknown email
// inserts the full payload with the default user role; a known email only
// refreshes last_log_in and leaves every other field untouched.
func (s *UserService) RegisterOrTouch(ctx context.Context, input *RegisterOrTouchInput) (*RegisterOrTouchOutput, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	now := time.Now()

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		if err := s.userRepo.TouchLastLogIn(ctx, input.Email, now); err != nil {
			return nil, err
		}
		existing.LastLogIn = now
		return &RegisterOrTouchOutput{User: existing.ToResponse(), Inserted: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = string(domain.RoleUser)
	}
	if !domain.Role(role).IsValid() {
		return nil, domain.ErrInvalidRole
	}

	user := &models.User{
		Email:     input.Email,
		Name:      input.Name,
		Role:      role,
		LastLogIn: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &RegisterOrTouchOutput{User: user.ToResponse(), Inserted: true}, nil
}

// GetRole returns the recognized role for an email, defaulting to user
// when no record exists
func (s *UserService) GetRole(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return string(domain.RoleUser), nil
		}
		return "", err
	}
	return user.Role, nil
}

// Search finds users by case-insensitive email fragment
func (s *UserService) Search(ctx context.Context, fragment string) ([]*models.UserResponse, error) {
	if fragment == "" {
		return nil, fmt.Errorf("%w: email query is required", domain.ErrInvalidInput)
	}

	users, err := s.userRepo.SearchByEmail(ctx, fragment, SearchLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

// UpdateRole sets a user's role (admin action)
func (s *UserService) UpdateRole(ctx context.Context, id uint, role string) error {
	if !domain.Role(role).IsValid() {
		return domain.ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if user.Role == role {
		return nil
	}

	if _, err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	return nil
}
