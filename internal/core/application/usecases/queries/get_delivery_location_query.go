package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetDeliveryLocationQueryIsNotConstructed = errors.New(
	"GetDeliveryLocationQuery must be created via NewGetDeliveryLocationQuery constructor",
)

// GetDeliveryLocationQuery reads the last pushed location of an order.
type GetDeliveryLocationQuery struct {
	orderID   kernel.UUID
	principal user.Principal

	guard guard.ConstructorGuard
}

func NewGetDeliveryLocationQuery(orderID kernel.UUID, principal user.Principal) (GetDeliveryLocationQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeliveryLocationQuery{}, err
	}

	return GetDeliveryLocationQuery{
		orderID:   orderID,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryLocationQueryIsNotConstructed)
}
