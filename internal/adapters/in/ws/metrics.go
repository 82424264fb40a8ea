package ws

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons a location update is dropped by the relay.
const (
	DropMalformed       = "malformed"
	DropRejected        = "rejected"
	DropStoreError      = "store_error"
	DropBroadcastFailed = "broadcast_failed"
	DropQueueFull       = "queue_full"
	DropForbidden       = "forbidden"
)

// Metrics counts accepted and dropped location updates. Drops are otherwise
// silent: agents never receive an error frame.
type Metrics struct {
	updates prometheus.Counter
	dropped *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		updates: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_location_updates_total",
			Help: "The total number of stored delivery location updates",
		}),
		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_dropped_updates_total",
			Help: "The total number of location updates dropped by the relay",
		}, []string{"reason"}),
	}
}

func (m *Metrics) accepted() {
	if m == nil {
		return
	}
	m.updates.Inc()
}

func (m *Metrics) drop(reason string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(reason).Inc()
}
