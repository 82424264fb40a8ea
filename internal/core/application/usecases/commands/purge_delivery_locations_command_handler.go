package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// PurgeDeliveryLocationsCommandHandler discards locations that nobody can
// observe any more: once an order is delivered or cancelled its location
// is no longer exposed.
type PurgeDeliveryLocationsCommandHandler struct {
	locations  ports.DeliveryLocationRepository
	uowFactory OrderUoWFactory
}

func NewPurgeDeliveryLocationsCommandHandler(
	locations ports.DeliveryLocationRepository,
	uowFactory OrderUoWFactory,
) PurgeDeliveryLocationsCommandHandler {
	return PurgeDeliveryLocationsCommandHandler{
		locations:  locations,
		uowFactory: uowFactory,
	}
}

// Handle returns how many locations were deleted.
func (h *PurgeDeliveryLocationsCommandHandler) Handle(ctx context.Context, cmd PurgeDeliveryLocationsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.locations.ListOrderIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	terminal, err := h.uowFactory.Create().OrderRepository().FilterTerminal(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(terminal) == 0 {
		return 0, nil
	}

	return h.locations.Delete(ctx, terminal)
}
