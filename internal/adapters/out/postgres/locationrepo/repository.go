package locationrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryLocationRepository implements DeliveryLocationRepository using GORM.
type GormDeliveryLocationRepository struct {
	db *gorm.DB
}

func NewGormDeliveryLocationRepository(db *gorm.DB) *GormDeliveryLocationRepository {
	return &GormDeliveryLocationRepository{db: db}
}

// Upsert writes loc with INSERT ... ON CONFLICT so concurrent first pushes
// for the same order never fail on the primary key.
func (r *GormDeliveryLocationRepository) Upsert(ctx context.Context, loc *tracking.DeliveryLocation) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(loc)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"longitude", "latitude", "updated_at"}),
		}).
		Create(&dto).Error
}

func (r *GormDeliveryLocationRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*tracking.DeliveryLocation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryLocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryLocation", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDeliveryLocationRepository) ListOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&DeliveryLocationDTO{}).
		Order("order_id").
		Pluck("order_id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, orderID)
	}

	return ids, nil
}

func (r *GormDeliveryLocationRepository) Delete(ctx context.Context, orderIDs []kernel.UUID) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}

	raw := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		raw = append(raw, id.Bytes())
	}

	result := r.db.WithContext(ctx).Delete(&DeliveryLocationDTO{}, "order_id IN ?", raw)
	return result.RowsAffected, result.Error
}
