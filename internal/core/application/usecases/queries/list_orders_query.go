package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrListUserOrdersQueryIsNotConstructed = errors.New(
		"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
	)
	ErrListRestaurantOrdersQueryIsNotConstructed = errors.New(
		"ListRestaurantOrdersQuery must be created via NewListRestaurantOrdersQuery constructor",
	)
)

// OrderFilter narrows an order listing. A nil Status lists every status.
type OrderFilter struct {
	Status *order.Status
	Limit  int
	Offset int
}

func (f OrderFilter) normalize() (OrderFilter, error) {
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return OrderFilter{}, err
		}
	}
	if f.Offset < 0 {
		return OrderFilter{}, errs.NewValueIsOutOfRangeError("offset", f.Offset, 0, "unbounded")
	}
	f.Limit = pageSize(f.Limit)
	return f, nil
}

// ListUserOrdersQuery lists the orders placed by a customer, most recent first.
type ListUserOrdersQuery struct {
	principal user.Principal
	filter    OrderFilter

	guard guard.ConstructorGuard
}

func NewListUserOrdersQuery(principal user.Principal, filter OrderFilter) (ListUserOrdersQuery, error) {
	normalized, err := filter.normalize()
	if err != nil {
		return ListUserOrdersQuery{}, err
	}

	return ListUserOrdersQuery{
		principal: principal,
		filter:    normalized,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}

// ListRestaurantOrdersQuery lists incoming orders of every restaurant the
// principal owns, most recent first.
type ListRestaurantOrdersQuery struct {
	principal user.Principal
	filter    OrderFilter

	guard guard.ConstructorGuard
}

func NewListRestaurantOrdersQuery(principal user.Principal, filter OrderFilter) (ListRestaurantOrdersQuery, error) {
	normalized, err := filter.normalize()
	if err != nil {
		return ListRestaurantOrdersQuery{}, err
	}

	return ListRestaurantOrdersQuery{
		principal: principal,
		filter:    normalized,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantOrdersQueryIsNotConstructed)
}
