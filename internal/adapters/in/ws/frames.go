package ws

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
)

// Inbound events.
const (
	EventUpdateAgentLocation = "updateAgentLocation"
	EventSubscribe           = "subscribe"
	EventUnsubscribe         = "unsubscribe"
)

// ChannelPrefix names the outbound per-order event: agentLocation:<orderId>.
const ChannelPrefix = "agentLocation:"

// Frame is the envelope of every message in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// LocationUpdate is the payload of updateAgentLocation. Pointer fields tell
// a missing coordinate apart from zero.
type LocationUpdate struct {
	OrderID   string   `json:"orderId"`
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
}

// Subscription is the payload of subscribe and unsubscribe.
type Subscription struct {
	OrderID string `json:"orderId"`
}

// AgentLocation is the payload sent to subscribers of an order.
type AgentLocation struct {
	OrderID   kernel.UUID `json:"orderId"`
	Longitude float64     `json:"longitude"`
	Latitude  float64     `json:"latitude"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func ChannelFor(orderID kernel.UUID) string {
	return ChannelPrefix + orderID.String()
}

func encodeLocation(loc *tracking.DeliveryLocation) ([]byte, error) {
	data, err := json.Marshal(AgentLocation{
		OrderID:   loc.OrderID(),
		Longitude: loc.Longitude(),
		Latitude:  loc.Latitude(),
		UpdatedAt: loc.UpdatedAt(),
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: ChannelFor(loc.OrderID()), Data: data})
}
