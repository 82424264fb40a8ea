package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/in/ws"
	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/adapters/out/paymentgateway"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/locationrepo"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	redisadapter "fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	goredis "github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

const paymentGatewayTimeout = 10 * time.Second

type closer interface {
	Close() error
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	registry     *prometheus.Registry
	relayMetrics *ws.Metrics
	hub          *ws.Hub

	redis       *goredis.Client
	pubsub      *redisadapter.PubSubBroadcaster
	locations   ports.DeliveryLocationRepository
	catalog     ports.MenuCatalog
	broadcaster ports.LocationBroadcaster
	pricer      services.OrderPricer
	tokens      *httpin.TokenIssuer

	closers []closer
}

// NewCompositionRoot wires the adapters selected by config around gormDB.
// Brokers and Redis are dialed here; Close releases them.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &CompositionRoot{
		config:   config,
		gormDB:   gormDB,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	publisher, err := c.newEventPublisher()
	if err != nil {
		return nil, err
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	if config.RedisAddr != "" {
		c.redis = goredis.NewClient(&goredis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
		})
		c.closers = append(c.closers, c.redis)
	}

	if c.pricer, err = services.NewOrderPricer(config.TaxRate); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("TAX_RATE: %w", err)
	}
	if c.tokens, err = httpin.NewTokenIssuer(config.JWTSecret, config.JWTTTL); err != nil {
		_ = c.Close()
		return nil, err
	}

	var catalog ports.MenuCatalog = restaurantrepo.NewGormRestaurantRepository(gormDB)
	if c.redis != nil {
		catalog = redisadapter.NewCachedMenuCatalog(catalog, c.redis, config.MenuCacheTTL, logger)
	}
	c.catalog = catalog

	switch config.LocationStore {
	case LocationStoreRedis:
		if c.redis == nil {
			_ = c.Close()
			return nil, errors.New("LOCATION_STORE=redis requires REDIS_ADDR")
		}
		c.locations = redisadapter.NewDeliveryLocationStore(c.redis)
	default:
		c.locations = locationrepo.NewGormDeliveryLocationRepository(gormDB)
	}

	c.relayMetrics = ws.NewMetrics(c.registry)
	c.hub = ws.NewHub(c.relayMetrics, logger)
	c.broadcaster = c.hub
	if c.redis != nil {
		c.pubsub = redisadapter.NewPubSubBroadcaster(c.redis, c.hub, logger)
		c.broadcaster = c.pubsub
	}

	return c, nil
}

func (c *CompositionRoot) newEventPublisher() (ports.EventPublisher, error) {
	switch c.config.EventBroker {
	case EventBrokerKafka:
		producer, err := messaging.DialKafka(c.config.KafkaBrokers())
		if err != nil {
			return nil, err
		}
		publisher := messaging.NewKafkaPublisher(producer, c.config.KafkaOrderChangedTopic)
		c.closers = append(c.closers, publisher)
		return publisher, nil
	case EventBrokerRabbitMQ:
		publisher, err := messaging.DialRabbitMQ(c.config.RabbitMQURL, c.config.RabbitMQExchange)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, publisher)
		return publisher, nil
	default:
		return nil, nil
	}
}

// Start runs the cross-instance location fan-out when Redis is configured.
// It returns once the subscription is confirmed.
func (c *CompositionRoot) Start(ctx context.Context) error {
	if c.pubsub == nil {
		return nil
	}

	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.pubsub.Listen(ctx, ready)
	}()

	select {
	case <-ready:
		go func() {
			if err := <-errCh; err != nil {
				c.logger.ErrorContext(ctx, "Location fan-out stopped", "error", err)
			}
		}()
		return nil
	case err := <-errCh:
		return fmt.Errorf("subscribe to location channels: %w", err)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases brokers and Redis in reverse order of creation.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

// Hub exposes the local subscriber registry of the location relay.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) NewRouter() (*echo.Echo, error) {
	return httpin.NewRouter(httpin.RouterConfig{
		Server:           c.CreateHTTPServer(),
		Tokens:           c.tokens,
		Relay:            c.CreateLocationRelay(),
		Registry:         c.registry,
		ValidateRequests: c.config.OpenAPIValidate,
		Logger:           c.logger,
	})
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		httpin.CommandHandlers{
			RegisterUser:        c.CreateRegisterUserCommandHandler(),
			CreateOrder:         c.CreateCreateOrderCommandHandler(),
			ChangeOrderStatus:   c.CreateChangeOrderStatusCommandHandler(),
			AddPaymentMethod:    c.CreateAddPaymentMethodCommandHandler(),
			DeletePaymentMethod: c.CreateDeletePaymentMethodCommandHandler(),
			CreatePromotion:     c.CreateCreatePromotionCommandHandler(),
			DeletePromotion:     c.CreateDeletePromotionCommandHandler(),
			CreateReview:        c.CreateCreateReviewCommandHandler(),
		},
		httpin.QueryHandlers{
			AuthenticateUser:     queries.NewAuthenticateUserQueryHandler(c.gormDB),
			GetOrder:             queries.NewGetOrderQueryHandler(c.gormDB, c.locations),
			ListUserOrders:       queries.NewListUserOrdersQueryHandler(c.gormDB),
			ListRestaurantOrders: queries.NewListRestaurantOrdersQueryHandler(c.gormDB),
			ListPaymentMethods:   queries.NewListPaymentMethodsQueryHandler(c.gormDB),
			ListPromotions:       queries.NewListPromotionsQueryHandler(c.gormDB),
			ListReviews:          queries.NewListReviewsQueryHandler(c.gormDB),
			GetDeliveryLocation:  queries.NewGetDeliveryLocationQueryHandler(c.gormDB, c.locations),
		},
		c.tokens,
		c.logger,
	)
}

func (c *CompositionRoot) CreateLocationRelay() *ws.Relay {
	handler := c.CreatePushDeliveryLocationCommandHandler()
	relay := ws.NewRelay(c.hub, &handler, c.relayMetrics, c.logger)
	if c.config.RelayRequireAuth {
		relay.RequireAuth(c.tokens, queries.NewOrderWatchAuthorizer(c.gormDB))
	}
	return relay
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeDeliveryLocationsCommandHandler(),
		c.CreateDeactivateExpiredPromotionsCommandHandler(),
		jobs.DefaultSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.catalog, c.pricer)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderStatusUoWFactory = FuncOrderStatusUoWFactory(func() commands.OrderStatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAddPaymentMethodCommandHandler() commands.AddPaymentMethodCommandHandler {
	var f commands.PaymentMethodUoWFactory = FuncPaymentMethodUoWFactory(func() commands.PaymentMethodUoW {
		return c.uowFactory.Create()
	})
	gateway := paymentgateway.NewClient(c.config.PaymentGatewayURL, c.config.PaymentGatewayKey, paymentGatewayTimeout)
	return commands.NewAddPaymentMethodCommandHandler(f, gateway)
}

func (c *CompositionRoot) CreateDeletePaymentMethodCommandHandler() commands.DeletePaymentMethodCommandHandler {
	var f commands.PaymentMethodUoWFactory = FuncPaymentMethodUoWFactory(func() commands.PaymentMethodUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeletePaymentMethodCommandHandler(f)
}

func (c *CompositionRoot) CreateCreatePromotionCommandHandler() commands.CreatePromotionCommandHandler {
	return commands.NewCreatePromotionCommandHandler(c.promotionUoWFactory())
}

func (c *CompositionRoot) CreateDeletePromotionCommandHandler() commands.DeletePromotionCommandHandler {
	return commands.NewDeletePromotionCommandHandler(c.promotionUoWFactory())
}

func (c *CompositionRoot) CreateDeactivateExpiredPromotionsCommandHandler() commands.DeactivateExpiredPromotionsCommandHandler {
	return commands.NewDeactivateExpiredPromotionsCommandHandler(c.promotionUoWFactory())
}

func (c *CompositionRoot) CreateCreateReviewCommandHandler() commands.CreateReviewCommandHandler {
	var f commands.ReviewUoWFactory = FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReviewCommandHandler(f)
}

func (c *CompositionRoot) CreatePushDeliveryLocationCommandHandler() commands.PushDeliveryLocationCommandHandler {
	handler := commands.NewPushDeliveryLocationCommandHandler(c.locations, c.broadcaster)
	if c.config.RelayRejectInactiveOrders {
		handler = handler.RejectInactiveOrders(c.orderUoWFactory())
	}
	return handler
}

func (c *CompositionRoot) CreatePurgeDeliveryLocationsCommandHandler() commands.PurgeDeliveryLocationsCommandHandler {
	return commands.NewPurgeDeliveryLocationsCommandHandler(c.locations, c.orderUoWFactory())
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) promotionUoWFactory() commands.PromotionUoWFactory {
	return FuncPromotionUoWFactory(func() commands.PromotionUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderStatusUoWFactory func() commands.OrderStatusUoW

func (f FuncOrderStatusUoWFactory) Create() commands.OrderStatusUoW {
	return f()
}

type FuncPaymentMethodUoWFactory func() commands.PaymentMethodUoW

func (f FuncPaymentMethodUoWFactory) Create() commands.PaymentMethodUoW {
	return f()
}

type FuncPromotionUoWFactory func() commands.PromotionUoW

func (f FuncPromotionUoWFactory) Create() commands.PromotionUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
