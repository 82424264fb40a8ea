package ws

import (
	"context"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/core/ports"
)

// Hub keeps the per-order subscriber sets of this instance and fans
// location updates out to them. Broadcast never waits on a subscriber: a
// client whose send queue is full misses the update.
type Hub struct {
	mu      sync.RWMutex
	topics  map[kernel.UUID]map[*Client]struct{}
	metrics *Metrics
	logger  *slog.Logger
}

var _ ports.LocationBroadcaster = (*Hub)(nil)

func NewHub(metrics *Metrics, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		topics:  make(map[kernel.UUID]map[*Client]struct{}),
		metrics: metrics,
		logger:  logger.With("component", "LocationHub"),
	}
}

func (h *Hub) Subscribe(c *Client, orderID kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[orderID]
	if !ok {
		subs = make(map[*Client]struct{})
		h.topics[orderID] = subs
	}
	subs[c] = struct{}{}
	c.topics[orderID] = struct{}{}
}

func (h *Hub) Unsubscribe(c *Client, orderID kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(c, orderID)
}

// Remove drops c from every order it subscribed to.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for orderID := range c.topics {
		h.unsubscribeLocked(c, orderID)
	}
}

func (h *Hub) unsubscribeLocked(c *Client, orderID kernel.UUID) {
	delete(c.topics, orderID)
	subs, ok := h.topics[orderID]
	if !ok {
		return
	}
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.topics, orderID)
	}
}

// Subscribers returns how many clients listen to orderID.
func (h *Hub) Subscribers(orderID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[orderID])
}

// Broadcast queues loc for every subscriber of its order.
func (h *Hub) Broadcast(ctx context.Context, loc *tracking.DeliveryLocation) error {
	frame, err := encodeLocation(loc)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.topics[loc.OrderID()] {
		if !c.enqueue(frame) {
			h.metrics.drop(DropQueueFull)
			h.logger.WarnContext(ctx, "Dropping location update for slow subscriber",
				"orderId", loc.OrderID().String(), "remote", c.remote, "reason", DropQueueFull)
		}
	}
	return nil
}
