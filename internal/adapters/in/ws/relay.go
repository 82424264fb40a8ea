package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// LocationPusher stores a location sample and broadcasts it.
type LocationPusher interface {
	Handle(ctx context.Context, cmd commands.PushDeliveryLocationCommand) (*tracking.DeliveryLocation, error)
}

// TokenParser turns a bearer token into the caller's principal.
type TokenParser interface {
	Parse(token string) (user.Principal, error)
}

// WatchAuthorizer decides whether principal may subscribe to an order.
type WatchAuthorizer interface {
	AuthorizeWatch(ctx context.Context, principal user.Principal, orderID kernel.UUID) error
}

// Relay serves the /ws endpoint. Agents push updateAgentLocation frames;
// watchers subscribe to an order and receive agentLocation:<orderId>
// frames. A bad push is logged and counted, never answered.
type Relay struct {
	hub        *Hub
	pusher     LocationPusher
	upgrader   websocket.Upgrader
	sendBuffer int
	metrics    *Metrics
	logger     *slog.Logger

	tokens   TokenParser
	watchers WatchAuthorizer
}

func NewRelay(hub *Hub, pusher LocationPusher, metrics *Metrics, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		hub:    hub,
		pusher: pusher,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sendBuffer: DefaultSendBuffer,
		metrics:    metrics,
		logger:     logger.With("component", "LocationRelay"),
	}
}

// RequireAuth closes the relay to anonymous connections. The upgrade
// request must carry a token (Authorization header or access_token query
// parameter); only delivery agents may push, and subscribing to an order
// needs watchers' approval.
func (r *Relay) RequireAuth(tokens TokenParser, watchers WatchAuthorizer) *Relay {
	r.tokens = tokens
	r.watchers = watchers
	return r
}

// Handle upgrades the request and serves the connection until it closes.
func (r *Relay) Handle(c echo.Context) error {
	var principal user.Principal
	if r.tokens != nil {
		p, authErr := r.authenticate(c.Request())
		if authErr != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing access token")
		}
		principal = p
	}

	conn, err := r.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		r.logger.Warn("WebSocket upgrade failed", "remote", c.RealIP(), "error", err)
		return nil
	}

	ctx := c.Request().Context()
	client := NewClient(conn, c.RealIP(), r.sendBuffer)
	client.principal = principal
	r.logger.DebugContext(ctx, "Relay client connected", "remote", client.remote)

	go client.WritePump()
	defer func() {
		r.hub.Remove(client)
		client.Close()
		r.logger.DebugContext(ctx, "Relay client disconnected", "remote", client.remote)
	}()

	if err = client.ReadPump(func(data []byte) { r.dispatch(ctx, client, data) }); err != nil {
		r.logger.InfoContext(ctx, "Relay connection closed unexpectedly", "remote", client.remote, "error", err)
	}
	return nil
}

func (r *Relay) dispatch(ctx context.Context, client *Client, data []byte) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		r.drop(ctx, DropMalformed, "frame is not JSON", "remote", client.remote, "error", err)
		return
	}

	switch frame.Event {
	case EventUpdateAgentLocation:
		if r.tokens != nil {
			if err := client.principal.Require(user.RoleDeliveryAgent); err != nil {
				r.drop(ctx, DropForbidden, "location update from non-agent", "remote", client.remote, "error", err)
				return
			}
		}
		r.push(ctx, frame.Data)
	case EventSubscribe, EventUnsubscribe:
		orderID, err := parseSubscription(frame.Data)
		if err != nil {
			r.logger.WarnContext(ctx, "Ignoring subscription", "event", frame.Event, "remote", client.remote, "error", err)
			return
		}
		if frame.Event == EventSubscribe {
			if r.watchers != nil {
				if err = r.watchers.AuthorizeWatch(ctx, client.principal, orderID); err != nil {
					r.logger.WarnContext(ctx, "Refusing subscription", "orderId", orderID.String(),
						"remote", client.remote, "error", err)
					return
				}
			}
			r.hub.Subscribe(client, orderID)
		} else {
			r.hub.Unsubscribe(client, orderID)
		}
	default:
		r.logger.WarnContext(ctx, "Ignoring unknown event", "event", frame.Event, "remote", client.remote)
	}
}

func (r *Relay) push(ctx context.Context, data json.RawMessage) {
	cmd, err := parseLocationUpdate(data)
	if err != nil {
		r.drop(ctx, DropMalformed, "malformed location update", "error", err)
		return
	}

	_, err = r.pusher.Handle(ctx, cmd)
	switch {
	case err == nil:
		r.metrics.accepted()
	case errors.Is(err, commands.ErrBroadcastFailed):
		r.metrics.accepted()
		r.drop(ctx, DropBroadcastFailed, "location stored but not broadcast",
			"orderId", cmd.OrderID().String(), "error", err)
	case errors.Is(err, commands.ErrOrderNotTrackable):
		r.drop(ctx, DropRejected, "location update for inactive order",
			"orderId", cmd.OrderID().String(), "error", err)
	default:
		r.drop(ctx, DropStoreError, "location update not stored",
			"orderId", cmd.OrderID().String(), "error", err)
	}
}

func (r *Relay) drop(ctx context.Context, reason, msg string, args ...any) {
	r.metrics.drop(reason)
	r.logger.WarnContext(ctx, "Dropping "+msg, append(args, "reason", reason)...)
}

func (r *Relay) authenticate(req *http.Request) (user.Principal, error) {
	token := req.URL.Query().Get("access_token")
	if header := req.Header.Get(echo.HeaderAuthorization); token == "" && header != "" {
		scheme, value, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			token = strings.TrimSpace(value)
		}
	}
	if token == "" {
		return user.Principal{}, errors.New("no access token")
	}
	return r.tokens.Parse(token)
}

var errMissingCoordinate = errors.New("longitude and latitude are required")

func parseLocationUpdate(data json.RawMessage) (commands.PushDeliveryLocationCommand, error) {
	var u LocationUpdate
	if err := json.Unmarshal(data, &u); err != nil {
		return commands.PushDeliveryLocationCommand{}, err
	}
	if u.Longitude == nil || u.Latitude == nil {
		return commands.PushDeliveryLocationCommand{}, errMissingCoordinate
	}
	orderID, err := kernel.UUIDFromString(u.OrderID)
	if err != nil {
		return commands.PushDeliveryLocationCommand{}, err
	}
	return commands.NewPushDeliveryLocationCommand(orderID, *u.Longitude, *u.Latitude)
}

func parseSubscription(data json.RawMessage) (kernel.UUID, error) {
	var s Subscription
	if err := json.Unmarshal(data, &s); err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(s.OrderID)
}
