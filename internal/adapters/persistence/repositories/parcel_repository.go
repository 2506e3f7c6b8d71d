package repositories

import (
	"context"
	"time"

	"swiftparcel/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// parcelRepository implements ParcelRepository interface
type parcelRepository struct {
	db *gorm.DB
}

// NewParcelRepository creates a new parcel repository
func NewParcelRepository(db *gorm.DB) ParcelRepository {
	return &parcelRepository{db: db}
}

// Create creates a new parcel
func (r *parcelRepository) Create(ctx context.Context, parcel *models.Parcel) error {
	return r.db.WithContext(ctx).Create(parcel).Error
}

// GetByID gets a parcel by ID
func (r *parcelRepository) GetByID(ctx context.Context, id uint) (*models.Parcel, error) {
	var parcel models.Parcel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&parcel).Error
	if err != nil {
		return nil, err
	}
	return &parcel, nil
}

// Delete removes a parcel and reports affected rows
func (r *parcelRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Parcel{}, id)
	return res.RowsAffected, res.Error
}

// List lists parcels newest first, optionally filtered by creator email
func (r *parcelRepository) List(ctx context.Context, createdBy string, offset, limit int) ([]*models.Parcel, int64, error) {
	var parcels []*models.Parcel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Parcel{})
	if createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&parcels).Error; err != nil {
		return nil, 0, err
	}

	return parcels, total, nil
}

// ListByRiderEmail lists parcels assigned to a rider in any of the given
// delivery statuses, newest assignment first
func (r *parcelRepository) ListByRiderEmail(ctx context.Context, email string, statuses []string) ([]*models.Parcel, error) {
	var parcels []*models.Parcel
	err := r.db.WithContext(ctx).
		Where("assigned_rider_email = ?", email).
		Where("delivery_status IN ?", statuses).
		Order("assigned_at DESC").
		Find(&parcels).Error
	if err != nil {
		return nil, err
	}
	return parcels, nil
}

// AssignRider stamps the rider snapshot onto a pending parcel. The update
// is conditional on delivery_status = 'pending', so two concurrent assigns
// of the same parcel cannot both succeed.
func (r *parcelRepository) AssignRider(ctx context.Context, parcelID uint, rider RiderSnapshot, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Parcel{}).
		Where("id = ? AND delivery_status = ?", parcelID, "pending").
		Updates(map[string]interface{}{
			"delivery_status":      "rider_assigned",
			"assigned_rider_id":    rider.ID,
			"assigned_rider_name":  rider.Name,
			"assigned_rider_email": rider.Email,
			"assigned_at":          at,
		})
	return res.RowsAffected, res.Error
}

// UpdateDeliveryStatus advances the delivery status and stamps the matching
// timestamp column. Conditional on the status actually changing, which makes
// repeated calls with the same status idempotent (no re-stamping).
func (r *parcelRepository) UpdateDeliveryStatus(ctx context.Context, id uint, status string, at time.Time) (int64, error) {
	updates := map[string]interface{}{
		"delivery_status": status,
	}
	switch status {
	case "in_transit":
		updates["in_transit_at"] = at
	case "delivered", "service_center_delivered":
		updates["delivered_at"] = at
	}

	res := r.db.WithContext(ctx).
		Model(&models.Parcel{}).
		Where("id = ? AND delivery_status <> ?", id, status).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// MarkPaid flips payment_status from unpaid to paid as a single conditional
// update. Zero affected rows means the parcel is missing or already paid.
func (r *parcelRepository) MarkPaid(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Parcel{}).
		Where("id = ? AND payment_status = ?", id, "unpaid").
		Update("payment_status", "paid")
	return res.RowsAffected, res.Error
}

// MarkCashedOut flips cashed_out_status as a single conditional update keyed
// on the pre-cashed-out state. Concurrent cash-outs of the same parcel race
// on this row; exactly one caller observes RowsAffected == 1 and only that
// caller may credit the rider.
func (r *parcelRepository) MarkCashedOut(ctx context.Context, id uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Parcel{}).
		Where("id = ? AND cashed_out_status <> ?", id, "cashed_out").
		Updates(map[string]interface{}{
			"cashed_out_status": "cashed_out",
			"cashed_out_at":     at,
		})
	return res.RowsAffected, res.Error
}
