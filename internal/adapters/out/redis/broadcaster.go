package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/core/ports"

	goredis "github.com/go-redis/redis/v8"
)

// ChannelPrefix names the per-order channel: agentLocation:<orderId>.
const ChannelPrefix = "agentLocation:"

// LocationMessage is the payload published for every location update.
type LocationMessage struct {
	OrderID   kernel.UUID `json:"orderId"`
	Longitude float64     `json:"longitude"`
	Latitude  float64     `json:"latitude"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func NewLocationMessage(loc *tracking.DeliveryLocation) LocationMessage {
	return LocationMessage{
		OrderID:   loc.OrderID(),
		Longitude: loc.Longitude(),
		Latitude:  loc.Latitude(),
		UpdatedAt: loc.UpdatedAt(),
	}
}

func (m LocationMessage) toDomain() (*tracking.DeliveryLocation, error) {
	point, err := kernel.NewLocation(m.Longitude, m.Latitude)
	if err != nil {
		return nil, err
	}
	return tracking.NewDeliveryLocation(m.OrderID, point, m.UpdatedAt)
}

// PubSubBroadcaster publishes location updates on Redis so that every
// instance of the service, this one included, hands them to its local
// subscribers. Listen must be running for local delivery to happen.
type PubSubBroadcaster struct {
	client goredis.UniversalClient
	local  ports.LocationBroadcaster
	logger *slog.Logger
}

var _ ports.LocationBroadcaster = (*PubSubBroadcaster)(nil)

func NewPubSubBroadcaster(
	client goredis.UniversalClient,
	local ports.LocationBroadcaster,
	logger *slog.Logger,
) *PubSubBroadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &PubSubBroadcaster{
		client: client,
		local:  local,
		logger: logger.With("component", "LocationPubSub"),
	}
}

func (b *PubSubBroadcaster) Broadcast(ctx context.Context, loc *tracking.DeliveryLocation) error {
	payload, err := json.Marshal(NewLocationMessage(loc))
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, ChannelPrefix+loc.OrderID().String(), payload).Err()
}

// Listen forwards every message on agentLocation:* to the local broadcaster
// until ctx is cancelled. ready, if not nil, is closed once the
// subscription is confirmed.
func (b *PubSubBroadcaster) Listen(ctx context.Context, ready chan<- struct{}) error {
	sub := b.client.PSubscribe(ctx, ChannelPrefix+"*")
	defer func() {
		_ = sub.Close()
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}
	b.logger.InfoContext(ctx, "Subscribed to location channels", "pattern", ChannelPrefix+"*")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return errors.New("location subscription closed")
			}
			b.forward(ctx, msg)
		}
	}
}

func (b *PubSubBroadcaster) forward(ctx context.Context, msg *goredis.Message) {
	var m LocationMessage
	if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
		b.logger.WarnContext(ctx, "Dropping malformed location message", "channel", msg.Channel, "error", err)
		return
	}
	if !strings.HasSuffix(msg.Channel, m.OrderID.String()) {
		b.logger.WarnContext(ctx, "Dropping location message on foreign channel",
			"channel", msg.Channel, "orderId", m.OrderID.String())
		return
	}

	loc, err := m.toDomain()
	if err != nil {
		b.logger.WarnContext(ctx, "Dropping invalid location message", "channel", msg.Channel, "error", err)
		return
	}

	if err = b.local.Broadcast(ctx, loc); err != nil {
		b.logger.WarnContext(ctx, "Local broadcast failed", "orderId", m.OrderID.String(), "error", err)
	}
}
