package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrListPromotionsQueryIsNotConstructed = errors.New(
	"ListPromotionsQuery must be created via NewListPromotionsQuery constructor",
)

// ListPromotionsQuery lists the promotions of a restaurant that are active
// and not yet expired at now.
type ListPromotionsQuery struct {
	restaurantID kernel.UUID
	now          time.Time

	guard guard.ConstructorGuard
}

func NewListPromotionsQuery(restaurantID kernel.UUID, now time.Time) (ListPromotionsQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return ListPromotionsQuery{}, err
	}

	return ListPromotionsQuery{
		restaurantID: restaurantID,
		now:          now.UTC(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListPromotionsQuery) Validate() error {
	return q.guard.Validate(ErrListPromotionsQueryIsNotConstructed)
}

type PromotionView struct {
	ID              kernel.UUID
	RestaurantID    kernel.UUID
	Code            string
	DiscountPercent string
	ValidUntil      time.Time
}
