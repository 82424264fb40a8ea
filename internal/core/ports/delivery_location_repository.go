package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
)

// DeliveryLocationRepository keeps the single latest location per order.
// It is not bound to a unit of work: every operation is one atomic write or
// read against the backing store (Postgres or Redis).
type DeliveryLocationRepository interface {
	// Upsert overwrites the location of loc.OrderID(), creating it if absent.
	// Last write wins; there is no ordering check between concurrent pushes.
	Upsert(ctx context.Context, loc *tracking.DeliveryLocation) error

	// GetByOrder returns errs.ObjectNotFoundError before the first push.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*tracking.DeliveryLocation, error)

	// ListOrderIDs returns every order that currently has a location.
	ListOrderIDs(ctx context.Context) ([]kernel.UUID, error)

	// Delete removes the locations of orderIDs and reports how many existed.
	Delete(ctx context.Context, orderIDs []kernel.UUID) (int64, error)
}
