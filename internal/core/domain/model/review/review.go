// Package review implements customer reviews of restaurants and dishes.
package review

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

const (
	MinRating = 1
	MaxRating = 5
)

var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")

type Review struct {
	id           kernel.UUID
	userID       kernel.UUID
	restaurantID kernel.UUID
	menuItemID   *kernel.UUID
	rating       int
	comment      string
	createdAt    time.Time

	isConstructed bool
}

// NewReview validates a rating in [MinRating, MaxRating]. menuItemID is
// optional; comment may be empty.
func NewReview(
	id, userID, restaurantID kernel.UUID,
	menuItemID *kernel.UUID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if vErr := userID.Validate(); vErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("user", vErr))
	}
	if vErr := restaurantID.Validate(); vErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("restaurant", vErr))
	}
	if menuItemID != nil {
		if vErr := menuItemID.Validate(); vErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("menuItemId", vErr))
		}
	}
	if rating < MinRating || rating > MaxRating {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating))
	}
	if err != nil {
		return nil, err
	}

	return &Review{
		id:            id,
		userID:        userID,
		restaurantID:  restaurantID,
		menuItemID:    menuItemID,
		rating:        rating,
		comment:       comment,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}
	return nil
}

func (r *Review) ID() kernel.UUID           { return r.id }
func (r *Review) UserID() kernel.UUID       { return r.userID }
func (r *Review) RestaurantID() kernel.UUID { return r.restaurantID }
func (r *Review) MenuItemID() *kernel.UUID  { return r.menuItemID }
func (r *Review) Rating() int               { return r.rating }
func (r *Review) Comment() string           { return r.comment }
func (r *Review) CreatedAt() time.Time      { return r.createdAt }
