package reviewrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/review"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormReviewRepository(db *gorm.DB, tracker aggregateTracker) *GormReviewRepository {
	return &GormReviewRepository{db: db, tracker: tracker}
}

func (r *GormReviewRepository) Add(ctx context.Context, aggregate *review.Review) error {
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

func (r *GormReviewRepository) Get(ctx context.Context, id kernel.UUID) (*review.Review, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReviewDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("review", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// RatingStats sums the ratings of a restaurant in the current transaction,
// so a review added just before is included.
func (r *GormReviewRepository) RatingStats(ctx context.Context, restaurantID kernel.UUID) (int, int, error) {
	var stats struct {
		Total int
		Count int
	}
	err := r.db.WithContext(ctx).
		Model(&ReviewDTO{}).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where("restaurant_id = ?", restaurantID.Bytes()).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}

	return stats.Total, stats.Count, nil
}
