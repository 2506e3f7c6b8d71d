package repositories

import (
	"context"
	"strings"
	"time"

	"swiftparcel/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchLastLogIn updates only the last_log_in column for the given email
func (r *userRepository) TouchLastLogIn(ctx context.Context, email string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("last_log_in", at).Error
}

// UpdateRole sets the role for a user by ID and reports affected rows
func (r *userRepository) UpdateRole(ctx context.Context, id uint, role string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role)
	return res.RowsAffected, res.Error
}

// UpdateRoleByEmail sets the role for a user by email. Zero affected rows
// is not an error: the rider-activation side effect is a no-op when the
// user record does not exist yet.
func (r *userRepository) UpdateRoleByEmail(ctx context.Context, email, role string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("role", role)
	return res.RowsAffected, res.Error
}

// SearchByEmail finds users whose email contains the fragment, case-insensitive
func (r *userRepository) SearchByEmail(ctx context.Context, fragment string, limit int) ([]*models.User, error) {
	var users []*models.User
	pattern := "%" + strings.ToLower(fragment) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(email) LIKE ?", pattern).
		Order("last_log_in DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
