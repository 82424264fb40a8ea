package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

const (
	EventNameCreated       = "order.created"
	EventNameStatusChanged = "order.status_changed"
)

// CreatedEvent is recorded when checkout places an order.
type CreatedEvent struct {
	OrderID      kernel.UUID `json:"orderId"`
	UserID       kernel.UUID `json:"userId"`
	RestaurantID kernel.UUID `json:"restaurantId"`
	Total        string      `json:"total"`
	Status       Status      `json:"status"`
	At           time.Time   `json:"occurredAt"`
}

func NewCreatedEvent(o *Order) CreatedEvent {
	return CreatedEvent{
		OrderID:      o.id,
		UserID:       o.userID,
		RestaurantID: o.restaurantID,
		Total:        o.total.String(),
		Status:       o.status,
		At:           o.createdAt,
	}
}

func (e CreatedEvent) EventName() string        { return EventNameCreated }
func (e CreatedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CreatedEvent) OccurredAt() time.Time    { return e.At }

// StatusChangedEvent is recorded on every accepted status transition.
type StatusChangedEvent struct {
	OrderID      kernel.UUID `json:"orderId"`
	UserID       kernel.UUID `json:"userId"`
	RestaurantID kernel.UUID `json:"restaurantId"`
	From         Status      `json:"from"`
	To           Status      `json:"to"`
	At           time.Time   `json:"occurredAt"`
}

func NewStatusChangedEvent(o *Order, from Status) StatusChangedEvent {
	return StatusChangedEvent{
		OrderID:      o.id,
		UserID:       o.userID,
		RestaurantID: o.restaurantID,
		From:         from,
		To:           o.status,
		At:           o.updatedAt,
	}
}

func (e StatusChangedEvent) EventName() string        { return EventNameStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time    { return e.At }
