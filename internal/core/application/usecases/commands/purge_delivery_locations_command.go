package commands

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrPurgeDeliveryLocationsCommandIsNotConstructed = errors.New(
	"PurgeDeliveryLocationsCommand must be created via NewPurgeDeliveryLocationsCommand constructor",
)

// PurgeDeliveryLocationsCommand removes the stored locations of orders that
// reached a terminal status. It has no parameters.
type PurgeDeliveryLocationsCommand struct {
	guard guard.ConstructorGuard
}

func NewPurgeDeliveryLocationsCommand() PurgeDeliveryLocationsCommand {
	return PurgeDeliveryLocationsCommand{guard: guard.NewConstructorGuard()}
}

func (c PurgeDeliveryLocationsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeDeliveryLocationsCommandIsNotConstructed)
}
