package paymentrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPaymentMethodRepository implements PaymentMethodRepository using GORM.
type GormPaymentMethodRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPaymentMethodRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db, tracker: tracker}
}

func (r *GormPaymentMethodRepository) Add(ctx context.Context, aggregate *payment.PaymentMethod) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPaymentMethodRepository) Get(ctx context.Context, id kernel.UUID) (*payment.PaymentMethod, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentMethodDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("paymentMethod", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPaymentMethodRepository) CountForUser(ctx context.Context, userID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PaymentMethodDTO{}).
		Where("user_id = ?", userID.Bytes()).
		Count(&count).Error
	return count, err
}

func (r *GormPaymentMethodRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PaymentMethodDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("paymentMethod", id.String())
	}

	return nil
}
