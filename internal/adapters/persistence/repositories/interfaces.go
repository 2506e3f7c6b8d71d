package repositories

import (
	"context"
	"time"

	"swiftparcel/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	TouchLastLogIn(ctx context.Context, email string, at time.Time) error
	UpdateRole(ctx context.Context, id uint, role string) (int64, error)
	UpdateRoleByEmail(ctx context.Context, email, role string) (int64, error)
	SearchByEmail(ctx context.Context, fragment string, limit int) ([]*models.User, error)
}

// RiderRepository defines rider repository interface
type RiderRepository interface {
	Create(ctx context.Context, rider *models.Rider) error
	GetByID(ctx context.Context, id uint) (*models.Rider, error)
	GetByEmail(ctx context.Context, email string) (*models.Rider, error)
	List(ctx context.Context) ([]*models.Rider, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Rider, error)
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	UpdateWorkStatus(ctx context.Context, id uint, workStatus string) error
	IncrementEarnings(ctx context.Context, id uint, amount float64) error
	ListStuckInDelivery(ctx context.Context) ([]*models.Rider, error)
}

// RiderSnapshot is the denormalized rider reference embedded on a parcel
type RiderSnapshot struct {
	ID    uint
	Name  string
	Email string
}

// ParcelRepository defines parcel repository interface.
//
// AssignRider, MarkPaid and MarkCashedOut are single conditional updates
// keyed on the prior workflow state; they return the number of rows the
// update changed so callers can tell a lost compare-and-set race (0) from
// a committed transition (1).
type ParcelRepository interface {
	Create(ctx context.Context, parcel *models.Parcel) error
	GetByID(ctx context.Context, id uint) (*models.Parcel, error)
	Delete(ctx context.Context, id uint) (int64, error)
	List(ctx context.Context, createdBy string, offset, limit int) ([]*models.Parcel, int64, error)
	ListByRiderEmail(ctx context.Context, email string, statuses []string) ([]*models.Parcel, error)
	AssignRider(ctx context.Context, parcelID uint, rider RiderSnapshot, at time.Time) (int64, error)
	UpdateDeliveryStatus(ctx context.Context, id uint, status string, at time.Time) (int64, error)
	MarkPaid(ctx context.Context, id uint) (int64, error)
	MarkCashedOut(ctx context.Context, id uint, at time.Time) (int64, error)
}

// TrackingRepository defines tracking event repository interface.
// Events are append-only: there is deliberately no update or delete.
type TrackingRepository interface {
	Create(ctx context.Context, event *models.TrackingEvent) error
	ListByTrackingID(ctx context.Context, trackingID string) ([]*models.TrackingEvent, error)
}

// PaymentRepository defines payment history repository interface.
// Records are append-only.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListByEmail(ctx context.Context, email string, offset, limit int) ([]*models.Payment, int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
