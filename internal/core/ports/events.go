package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/tracking"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}

// LocationBroadcaster fans a stored location out to everyone subscribed to
// its order. Delivery is best effort; Broadcast does not wait for
// subscribers.
type LocationBroadcaster interface {
	Broadcast(ctx context.Context, loc *tracking.DeliveryLocation) error
}

// PaymentGateway resolves a client-side payment method token to the card
// metadata the service is allowed to store.
type PaymentGateway interface {
	ResolvePaymentMethod(ctx context.Context, token string) (payment.CardDetails, error)
}
