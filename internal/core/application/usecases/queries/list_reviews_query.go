package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrListReviewsQueryIsNotConstructed = errors.New(
	"ListReviewsQuery must be created via NewListReviewsQuery constructor",
)

// ListReviewsQuery pages through the reviews of a restaurant, newest first.
type ListReviewsQuery struct {
	restaurantID kernel.UUID
	limit        int
	offset       int

	guard guard.ConstructorGuard
}

func NewListReviewsQuery(restaurantID kernel.UUID, limit, offset int) (ListReviewsQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return ListReviewsQuery{}, errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	if offset < 0 {
		return ListReviewsQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	return ListReviewsQuery{
		restaurantID: restaurantID,
		limit:        pageSize(limit),
		offset:       offset,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListReviewsQuery) Validate() error {
	return q.guard.Validate(ErrListReviewsQueryIsNotConstructed)
}

type ReviewView struct {
	ID         kernel.UUID
	UserID     kernel.UUID
	UserName   string
	MenuItemID *kernel.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}
