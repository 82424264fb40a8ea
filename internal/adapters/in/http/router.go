package http

import (
	"log/slog"
	"net/http"

	"fooddelivery/internal/adapters/in/ws"
	"fooddelivery/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds what NewRouter mounts.
type RouterConfig struct {
	Server *Server
	Tokens *TokenIssuer
	// Relay serves GET /ws; nil leaves the endpoint unmounted.
	Relay *ws.Relay
	// Registry receives the HTTP metrics and is exposed on /metrics.
	Registry *prometheus.Registry
	// ValidateRequests checks requests against the OpenAPI document
	// before they reach the handlers.
	ValidateRequests bool
	Logger           *slog.Logger
}

// NewRouter builds the echo instance with the API, the location relay and
// the operational endpoints.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))
	e.Use(NewHTTPMetrics(registry).Middleware())

	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	doc, err := documentJSON(swagger)
	if err != nil {
		return nil, err
	}

	if cfg.ValidateRequests {
		validator, vErr := OpenAPIValidator(swagger)
		if vErr != nil {
			return nil, vErr
		}
		e.Use(validator)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.Relay != nil {
		e.GET("/ws", cfg.Relay.Handle)
	}

	api := e.Group("", Authenticate(cfg.Tokens))
	servers.RegisterHandlers(api, cfg.Server)

	return e, nil
}
