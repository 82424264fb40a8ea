// Package messaging publishes domain events to Kafka or RabbitMQ. Both
// brokers carry the same JSON envelope.
package messaging

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Envelope wraps a domain event on the wire.
type Envelope struct {
	Event       string             `json:"event"`
	AggregateID kernel.UUID        `json:"aggregateId"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Payload     kernel.DomainEvent `json:"payload"`
}

func encode(event kernel.DomainEvent) ([]byte, error) {
	return json.Marshal(Envelope{
		Event:       event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     event,
	})
}
