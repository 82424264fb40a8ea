package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrPushDeliveryLocationCommandIsNotConstructed = errors.New(
	"PushDeliveryLocationCommand must be created via NewPushDeliveryLocationCommand constructor",
)

// PushDeliveryLocationCommand carries one location sample from a delivery
// agent. Coordinates are (longitude, latitude), in that order.
type PushDeliveryLocationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	point   kernel.Location

	guard guard.ConstructorGuard
}

func NewPushDeliveryLocationCommand(orderID kernel.UUID, longitude, latitude float64) (PushDeliveryLocationCommand, error) {
	point, pointErr := kernel.NewLocation(longitude, latitude)
	cmd := PushDeliveryLocationCommand{
		point: point,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), pointErr); err != nil {
		return PushDeliveryLocationCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

func (c PushDeliveryLocationCommand) Validate() error {
	return c.guard.Validate(ErrPushDeliveryLocationCommandIsNotConstructed)
}

func (c PushDeliveryLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PushDeliveryLocationCommand) Point() kernel.Location {
	return c.point
}
