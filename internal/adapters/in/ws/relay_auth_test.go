package ws_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fooddelivery/internal/adapters/in/ws"
	"fooddelivery/internal/adapters/out/postgres/locationrepo"
	"fooddelivery/internal/adapters/out/postgres/testdb"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens map[string]user.Principal

func (s staticTokens) Parse(token string) (user.Principal, error) {
	p, ok := s[token]
	if !ok {
		return user.Principal{}, errors.New("unknown token")
	}
	return p, nil
}

// watchList lets each principal watch exactly one order.
type watchList map[kernel.UUID]kernel.UUID

func (w watchList) AuthorizeWatch(_ context.Context, p user.Principal, orderID kernel.UUID) error {
	if allowed, ok := w[p.UserID]; ok && allowed.IsEqual(orderID) {
		return nil
	}
	return errs.NewAccessDeniedError("not a participant")
}

type securedRelay struct {
	*relayWorld
	agent, customer, stranger user.Principal
	orderID                   kernel.UUID
}

func newSecuredRelay(t *testing.T) *securedRelay {
	t.Helper()

	s := &securedRelay{
		agent:    user.Principal{UserID: kernel.NewUUID(), Role: user.RoleDeliveryAgent},
		customer: user.Principal{UserID: kernel.NewUUID(), Role: user.RoleCustomer},
		stranger: user.Principal{UserID: kernel.NewUUID(), Role: user.RoleCustomer},
		orderID:  kernel.NewUUID(),
	}
	tokens := staticTokens{"agent": s.agent, "customer": s.customer, "stranger": s.stranger}
	watchers := watchList{s.customer.UserID: s.orderID}

	registry := prometheus.NewRegistry()
	metrics := ws.NewMetrics(registry)
	hub := ws.NewHub(metrics, quietLogger())
	locations := locationrepo.NewGormDeliveryLocationRepository(testdb.Open(t))

	push := commands.NewPushDeliveryLocationCommandHandler(locations, hub)
	relay := ws.NewRelay(hub, &push, metrics, quietLogger()).RequireAuth(tokens, watchers)

	e := echo.New()
	e.GET("/ws", relay.Handle)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	s.relayWorld = &relayWorld{
		hub:       hub,
		registry:  registry,
		locations: locations,
		url:       "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
	}
	return s
}

func (s *securedRelay) dialAs(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(s.url,
		http.Header{echo.HeaderAuthorization: []string{"Bearer " + token}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSecuredRelay_RejectsAnonymousConnections(t *testing.T) {
	s := newSecuredRelay(t)

	for _, url := range []string{s.url, s.url + "?access_token=forged"} {
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	}
}

func TestSecuredRelay_AcceptsQueryToken(t *testing.T) {
	s := newSecuredRelay(t)

	conn, resp, err := websocket.DefaultDialer.Dial(s.url+"?access_token=customer", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	defer conn.Close()

	s.subscribe(t, conn, s.orderID)
}

func TestSecuredRelay_OnlyAgentsPush(t *testing.T) {
	s := newSecuredRelay(t)
	ctx := context.Background()

	watcher := s.dialAs(t, "customer")
	s.subscribe(t, watcher, s.orderID)

	send(t, watcher, ws.EventUpdateAgentLocation,
		map[string]any{"orderId": s.orderID.String(), "longitude": 1.0, "latitude": 2.0})
	assert.Eventually(t, func() bool {
		return counter(t, s.registry, "relay_dropped_updates_total", ws.DropForbidden) == 1
	}, time.Second, 10*time.Millisecond)

	_, err := s.locations.GetByOrder(ctx, s.orderID)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	agent := s.dialAs(t, "agent")
	send(t, agent, ws.EventUpdateAgentLocation,
		map[string]any{"orderId": s.orderID.String(), "longitude": 90.41, "latitude": 23.81})

	event, loc := readLocation(t, watcher)
	assert.Equal(t, ws.ChannelFor(s.orderID), event)
	assert.Equal(t, 90.41, loc.Longitude)
	assert.Equal(t, 23.81, loc.Latitude)
}

func TestSecuredRelay_RefusesSubscriptionOfNonParticipants(t *testing.T) {
	s := newSecuredRelay(t)

	stranger := s.dialAs(t, "stranger")
	send(t, stranger, ws.EventSubscribe, map[string]any{"orderId": s.orderID.String()})

	customer := s.dialAs(t, "customer")
	s.subscribe(t, customer, s.orderID)

	assert.Never(t, func() bool { return s.hub.Subscribers(s.orderID) > 1 },
		200*time.Millisecond, 20*time.Millisecond)

	agent := s.dialAs(t, "agent")
	send(t, agent, ws.EventUpdateAgentLocation,
		map[string]any{"orderId": s.orderID.String(), "longitude": 5.0, "latitude": 6.0})

	_, _ = readLocation(t, customer)
	expectSilence(t, stranger)
}
