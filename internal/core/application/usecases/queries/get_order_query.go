package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of principal.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, principal)
//	view, err := handler.Handle(ctx, query)
//	if view.Location != nil {
//	    fmt.Printf("agent at (%.5f, %.5f)\n", view.Location.Longitude, view.Location.Latitude)
//	}
type GetOrderQuery struct {
	orderID   kernel.UUID
	principal user.Principal

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, principal user.Principal) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:   orderID,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Principal() user.Principal {
	return q.principal
}
