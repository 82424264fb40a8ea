package promotionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrCodeTaken = errors.New("promotion code is already in use")

// GormPromotionRepository implements PromotionRepository using GORM.
type GormPromotionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPromotionRepository(db *gorm.DB, tracker aggregateTracker) *GormPromotionRepository {
	return &GormPromotionRepository{db: db, tracker: tracker}
}

// Add stores a new promotion. A code already used by any restaurant is
// rejected as invalid input.
func (r *GormPromotionRepository) Add(ctx context.Context, aggregate *promotion.Promotion) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var taken int64
	if err := r.db.WithContext(ctx).
		Model(&PromotionDTO{}).
		Where("code = ?", aggregate.Code()).
		Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%w: %s", ErrCodeTaken, aggregate.Code()))
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPromotionRepository) Get(ctx context.Context, id kernel.UUID) (*promotion.Promotion, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PromotionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("promotion", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode looks a promotion up by its normalized code.
func (r *GormPromotionRepository) GetByCode(ctx context.Context, code string) (*promotion.Promotion, error) {
	normalized := promotion.NormalizeCode(code)

	var dto PromotionDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("promotion", normalized)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPromotionRepository) Update(ctx context.Context, aggregate *promotion.Promotion) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PromotionDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"code":             dto.Code,
			"discount_percent": dto.DiscountPercent,
			"valid_until":      dto.ValidUntil,
			"active":           dto.Active,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("promotion", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPromotionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PromotionDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("promotion", id.String())
	}

	return nil
}

// ListExpiredActive returns active promotions whose validUntil is not after now.
func (r *GormPromotionRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*promotion.Promotion, error) {
	var dtos []PromotionDTO
	if err := r.db.WithContext(ctx).
		Where("active = ? AND valid_until <= ?", true, now.UTC()).
		Order("valid_until").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*promotion.Promotion, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}
