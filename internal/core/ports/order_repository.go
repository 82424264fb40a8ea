// Package ports defines the contracts between the core and its adapters:
// repositories, the delivery location store, the menu catalog, event
// publishing, the location broadcaster and the payment gateway.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Listing orders is a read concern served by the queries package.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	// Returns errs.ObjectNotFoundError when no order has that id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus writes the aggregate's current status (and the timestamps
	// it drives) only if the stored status still equals expected. The check
	// and the write are one statement, so of two racing changes from the
	// same status at most one succeeds.
	//
	// Returns errs.ObjectNotFoundError when the order is gone and
	// errs.IllegalTransitionError when the stored status moved on.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// FilterTerminal returns the subset of ids whose order is delivered or
	// cancelled. Unknown ids are not returned.
	FilterTerminal(ctx context.Context, ids []kernel.UUID) ([]kernel.UUID, error)
}
