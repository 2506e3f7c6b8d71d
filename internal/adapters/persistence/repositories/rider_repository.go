package repositories

import (
	"context"

	"swiftparcel/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// riderRepository implements RiderRepository interface
type riderRepository struct {
	db *gorm.DB
}

// NewRiderRepository creates a new rider repository
func NewRiderRepository(db *gorm.DB) RiderRepository {
	return &riderRepository{db: db}
}

// Create creates a new rider application
func (r *riderRepository) Create(ctx context.Context, rider *models.Rider) error {
	return r.db.WithContext(ctx).Create(rider).Error
}

// GetByID gets a rider by ID
func (r *riderRepository) GetByID(ctx context.Context, id uint) (*models.Rider, error) {
	var rider models.Rider
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rider).Error
	if err != nil {
		return nil, err
	}
	return &rider, nil
}

// GetByEmail gets a rider by email
func (r *riderRepository) GetByEmail(ctx context.Context, email string) (*models.Rider, error) {
	var rider models.Rider
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&rider).Error
	if err != nil {
		return nil, err
	}
	return &rider, nil
}

// List lists all riders, newest first
func (r *riderRepository) List(ctx context.Context) ([]*models.Rider, error) {
	var riders []*models.Rider
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&riders).Error
	if err != nil {
		return nil, err
	}
	return riders, nil
}

// ListByStatus lists riders with the given status, newest first
func (r *riderRepository) ListByStatus(ctx context.Context, status string) ([]*models.Rider, error) {
	var riders []*models.Rider
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&riders).Error
	if err != nil {
		return nil, err
	}
	return riders, nil
}

// UpdateStatus sets the rider status and reports affected rows
func (r *riderRepository) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Rider{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// UpdateWorkStatus sets the rider work status
func (r *riderRepository) UpdateWorkStatus(ctx context.Context, id uint, workStatus string) error {
	return r.db.WithContext(ctx).
		Model(&models.Rider{}).
		Where("id = ?", id).
		Update("work_status", workStatus).Error
}

// IncrementEarnings atomically adds the amount to the rider's cumulative
// earnings. The increment runs inside the database so concurrent cash-outs
// of different parcels never lose updates.
func (r *riderRepository) IncrementEarnings(ctx context.Context, id uint, amount float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Rider{}).
		Where("id = ?", id).
		Update("total_earnings", gorm.Expr("total_earnings + ?", amount)).Error
}

// ListStuckInDelivery finds riders marked in_delivery that no longer have
// an open parcel assigned to them. These are leftovers of the documented
// two-document assignment/delivery updates without rollback.
func (r *riderRepository) ListStuckInDelivery(ctx context.Context) ([]*models.Rider, error) {
	var riders []*models.Rider
	err := r.db.WithContext(ctx).
		Where("work_status = ?", "in_delivery").
		Where(`NOT EXISTS (
			SELECT 1 FROM parcels
			WHERE parcels.assigned_rider_id = riders.id
			AND parcels.delivery_status IN ('rider_assigned', 'in_transit')
		)`).
		Find(&riders).Error
	if err != nil {
		return nil, err
	}
	return riders, nil
}
