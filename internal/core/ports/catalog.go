package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

// MenuCatalog supplies restaurants with their current menu prices.
type MenuCatalog interface {
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
}

// RestaurantRepository is the transactional side of the catalog used by
// commands: ownership checks and rating updates.
type RestaurantRepository interface {
	MenuCatalog

	// UpdateRating stores the recomputed average review rating.
	UpdateRating(ctx context.Context, id kernel.UUID, rating float64) error
}
