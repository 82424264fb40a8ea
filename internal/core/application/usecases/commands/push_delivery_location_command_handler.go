package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrOrderNotTrackable is returned when inactive-order rejection is on
	// and the order is unknown or already delivered or cancelled.
	ErrOrderNotTrackable = errors.New("order does not accept location updates")

	// ErrBroadcastFailed wraps a broadcaster failure after the location was
	// stored.
	ErrBroadcastFailed = errors.New("location stored but broadcast failed")
)

// PushDeliveryLocationCommandHandler stores the latest location of an order
// and hands it to the broadcaster.
//
// By default any order id is accepted, including ids of orders that do not
// exist. RejectInactiveOrders turns on a check against the order store.
type PushDeliveryLocationCommandHandler struct {
	locations   ports.DeliveryLocationRepository
	broadcaster ports.LocationBroadcaster
	orders      OrderUoWFactory
}

func NewPushDeliveryLocationCommandHandler(
	locations ports.DeliveryLocationRepository,
	broadcaster ports.LocationBroadcaster,
) PushDeliveryLocationCommandHandler {
	return PushDeliveryLocationCommandHandler{
		locations:   locations,
		broadcaster: broadcaster,
	}
}

// RejectInactiveOrders returns a handler that drops pushes for orders that
// are unknown or terminal.
func (h PushDeliveryLocationCommandHandler) RejectInactiveOrders(orders OrderUoWFactory) PushDeliveryLocationCommandHandler {
	h.orders = orders
	return h
}

// Handle upserts the location and broadcasts it. When only the broadcast
// fails the stored location is returned together with ErrBroadcastFailed.
func (h *PushDeliveryLocationCommandHandler) Handle(
	ctx context.Context,
	cmd PushDeliveryLocationCommand,
) (*tracking.DeliveryLocation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if h.orders != nil {
		if err := h.ensureTrackable(ctx, cmd); err != nil {
			return nil, err
		}
	}

	loc, err := tracking.NewDeliveryLocation(cmd.OrderID(), cmd.Point(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = h.locations.Upsert(ctx, loc); err != nil {
		return nil, err
	}

	if err = h.broadcaster.Broadcast(ctx, loc); err != nil {
		return loc, fmt.Errorf("%w: %w", ErrBroadcastFailed, err)
	}

	return loc, nil
}

func (h *PushDeliveryLocationCommandHandler) ensureTrackable(ctx context.Context, cmd PushDeliveryLocationCommand) error {
	o, err := h.orders.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %w", ErrOrderNotTrackable, err)
	}
	if err != nil {
		return err
	}
	if o.Status().IsTerminal() {
		return fmt.Errorf("%w: order %s is %s", ErrOrderNotTrackable, o.ID(), o.Status())
	}
	return nil
}
