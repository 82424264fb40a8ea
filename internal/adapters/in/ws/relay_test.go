package ws_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fooddelivery/internal/adapters/in/ws"
	"fooddelivery/internal/adapters/out/postgres/locationrepo"
	"fooddelivery/internal/adapters/out/postgres/testdb"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relayWorld struct {
	hub       *ws.Hub
	registry  *prometheus.Registry
	locations *locationrepo.GormDeliveryLocationRepository
	url       string
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRelayWorld(t *testing.T) *relayWorld {
	t.Helper()

	registry := prometheus.NewRegistry()
	metrics := ws.NewMetrics(registry)
	hub := ws.NewHub(metrics, quietLogger())
	locations := locationrepo.NewGormDeliveryLocationRepository(testdb.Open(t))

	push := commands.NewPushDeliveryLocationCommandHandler(locations, hub)
	relay := ws.NewRelay(hub, &push, metrics, quietLogger())

	e := echo.New()
	e.GET("/ws", relay.Handle)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return &relayWorld{
		hub:       hub,
		registry:  registry,
		locations: locations,
		url:       "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
	}
}

func (w *relayWorld) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(w.url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": event, "data": data}))
}

func (w *relayWorld) subscribe(t *testing.T, conn *websocket.Conn, orderID kernel.UUID) {
	t.Helper()
	before := w.hub.Subscribers(orderID)
	send(t, conn, ws.EventSubscribe, map[string]any{"orderId": orderID.String()})
	require.Eventually(t, func() bool { return w.hub.Subscribers(orderID) == before+1 },
		2*time.Second, 10*time.Millisecond)
}

func readLocation(t *testing.T, conn *websocket.Conn) (string, ws.AgentLocation) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame ws.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	var loc ws.AgentLocation
	require.NoError(t, json.Unmarshal(frame.Data, &loc))
	return frame.Event, loc
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	var netErr interface{ Timeout() bool }
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func counter(t *testing.T, reg *prometheus.Registry, name, reason string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if reason == "" {
				return m.GetCounter().GetValue()
			}
			for _, label := range m.GetLabel() {
				if label.GetName() == "reason" && label.GetValue() == reason {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestRelay_PushReachesSubscribersOfThatOrderOnly(t *testing.T) {
	w := newRelayWorld(t)
	orderID, otherID := kernel.NewUUID(), kernel.NewUUID()

	watcher := w.dial(t)
	w.subscribe(t, watcher, orderID)
	bystander := w.dial(t)
	w.subscribe(t, bystander, otherID)
	agent := w.dial(t)

	send(t, agent, ws.EventUpdateAgentLocation, map[string]any{
		"orderId": orderID.String(), "longitude": 90.4125, "latitude": 23.8103,
	})

	event, loc := readLocation(t, watcher)
	assert.Equal(t, "agentLocation:"+orderID.String(), event)
	assert.Equal(t, orderID, loc.OrderID)
	assert.InDelta(t, 90.4125, loc.Longitude, 1e-9)
	assert.InDelta(t, 23.8103, loc.Latitude, 1e-9)
	assert.False(t, loc.UpdatedAt.IsZero())

	expectSilence(t, bystander)

	stored, err := w.locations.GetByOrder(t.Context(), orderID)
	require.NoError(t, err)
	assert.InDelta(t, 90.4125, stored.Longitude(), 1e-9)
	assert.InDelta(t, 23.8103, stored.Latitude(), 1e-9)
	assert.Eventually(t, func() bool {
		return counter(t, w.registry, "relay_location_updates_total", "") == 1
	}, time.Second, 10*time.Millisecond)
}

// Two pushes for the same order leave only the second one stored.
func TestRelay_LastPushWins(t *testing.T) {
	w := newRelayWorld(t)
	orderID := kernel.NewUUID()

	watcher := w.dial(t)
	w.subscribe(t, watcher, orderID)
	agent := w.dial(t)

	send(t, agent, ws.EventUpdateAgentLocation, map[string]any{"orderId": orderID.String(), "longitude": 1.0, "latitude": 2.0})
	send(t, agent, ws.EventUpdateAgentLocation, map[string]any{"orderId": orderID.String(), "longitude": 3.0, "latitude": 4.0})

	_, first := readLocation(t, watcher)
	_, second := readLocation(t, watcher)
	assert.InDelta(t, 1.0, first.Longitude, 1e-9)
	assert.InDelta(t, 3.0, second.Longitude, 1e-9)

	stored, err := w.locations.GetByOrder(t.Context(), orderID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, stored.Longitude(), 1e-9)
	assert.InDelta(t, 4.0, stored.Latitude(), 1e-9)
}

func TestRelay_MalformedPushesAreDroppedSilently(t *testing.T) {
	w := newRelayWorld(t)
	orderID := kernel.NewUUID()

	watcher := w.dial(t)
	w.subscribe(t, watcher, orderID)
	agent := w.dial(t)

	bad := []any{
		map[string]any{"orderId": orderID.String(), "longitude": 90.4},
		map[string]any{"orderId": orderID.String(), "latitude": 23.8},
		map[string]any{"orderId": "not-a-uuid", "longitude": 1.0, "latitude": 2.0},
		map[string]any{"orderId": orderID.String(), "longitude": 181.0, "latitude": 2.0},
		map[string]any{"orderId": orderID.String(), "longitude": "east", "latitude": 2.0},
		nil,
	}
	for _, data := range bad {
		send(t, agent, ws.EventUpdateAgentLocation, data)
	}
	require.NoError(t, agent.WriteMessage(websocket.TextMessage, []byte("{not json")))

	// The connection is still usable and nothing was acknowledged.
	send(t, agent, ws.EventUpdateAgentLocation, map[string]any{"orderId": orderID.String(), "longitude": 5.0, "latitude": 6.0})
	_, loc := readLocation(t, watcher)
	assert.InDelta(t, 5.0, loc.Longitude, 1e-9)
	expectSilence(t, agent)

	assert.InDelta(t, float64(len(bad)+1), counter(t, w.registry, "relay_dropped_updates_total", ws.DropMalformed), 0)
	assert.Eventually(t, func() bool {
		return counter(t, w.registry, "relay_location_updates_total", "") == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRelay_UnsubscribeAndDisconnect(t *testing.T) {
	w := newRelayWorld(t)
	orderID := kernel.NewUUID()

	watcher := w.dial(t)
	w.subscribe(t, watcher, orderID)
	leaver := w.dial(t)
	w.subscribe(t, leaver, orderID)
	require.Equal(t, 2, w.hub.Subscribers(orderID))

	send(t, watcher, ws.EventUnsubscribe, map[string]any{"orderId": orderID.String()})
	require.Eventually(t, func() bool { return w.hub.Subscribers(orderID) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, leaver.Close())
	require.Eventually(t, func() bool { return w.hub.Subscribers(orderID) == 0 }, 2*time.Second, 10*time.Millisecond)

	agent := w.dial(t)
	send(t, agent, ws.EventUpdateAgentLocation, map[string]any{"orderId": orderID.String(), "longitude": 1.0, "latitude": 2.0})
	expectSilence(t, watcher)
}

// A push without watchers is still stored and can be read later.
func TestRelay_PushWithoutSubscribersIsStored(t *testing.T) {
	w := newRelayWorld(t)
	orderID := kernel.NewUUID()

	_, err := w.locations.GetByOrder(t.Context(), orderID)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	agent := w.dial(t)
	send(t, agent, ws.EventUpdateAgentLocation, map[string]any{"orderId": orderID.String(), "longitude": 90.4125, "latitude": 23.8103})

	require.Eventually(t, func() bool {
		_, err := w.locations.GetByOrder(t.Context(), orderID)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_FullQueueDropsUpdate(t *testing.T) {
	registry := prometheus.NewRegistry()
	hub := ws.NewHub(ws.NewMetrics(registry), quietLogger())
	orderID := kernel.NewUUID()

	slow := ws.NewClient(nil, "slow", 1)
	hub.Subscribe(slow, orderID)

	point, err := kernel.NewLocation(1, 2)
	require.NoError(t, err)
	loc, err := tracking.NewDeliveryLocation(orderID, point, time.Now())
	require.NoError(t, err)

	require.NoError(t, hub.Broadcast(t.Context(), loc))
	require.NoError(t, hub.Broadcast(t.Context(), loc))

	assert.Equal(t, 1, slow.Pending())
	assert.InDelta(t, 1, counter(t, registry, "relay_dropped_updates_total", ws.DropQueueFull), 0)

	hub.Remove(slow)
	assert.Zero(t, hub.Subscribers(orderID))
}
