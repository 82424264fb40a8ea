package userrepo

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email is already registered")

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{db: db, tracker: tracker}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var taken int64
	if err := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("email = ?", aggregate.Email()).
		Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%w: %s", ErrEmailTaken, aggregate.Email()))
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByEmail matches the normalized address.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	var dto UserDTO
	if err = r.db.WithContext(ctx).First(&dto, "email = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", normalized)
		}
		return nil, err
	}

	return toDomain(dto)
}
