package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fooddelivery/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	LocationStorePostgres = "postgres"
	LocationStoreRedis    = "redis"

	EventBrokerNone     = "none"
	EventBrokerKafka    = "kafka"
	EventBrokerRabbitMQ = "rabbitmq"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	JWTTTL    time.Duration
	// TaxRate is a percent of the subtotal, 8 means 8%.
	TaxRate decimal.Decimal

	RedisAddr     string
	RedisPassword string
	MenuCacheTTL  time.Duration
	LocationStore string

	EventBroker            string
	KafkaHost              string
	KafkaOrderChangedTopic string
	RabbitMQURL            string
	RabbitMQExchange       string

	PaymentGatewayURL string
	PaymentGatewayKey string

	RelayRejectInactiveOrders bool
	RelayRequireAuth          bool
	OpenAPIValidate           bool
}

// LoadConfig reads envFile into the process environment, if it exists, and
// builds the Config from the environment. Variables already set in the
// environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds the Config from getenv, applying defaults and
// rejecting values that cannot be parsed.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	value := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	config := Config{
		HTTPPort:               value("HTTP_PORT", "8080"),
		DBHost:                 value("DB_HOST", "localhost"),
		DBPort:                 value("DB_PORT", "5432"),
		DBUser:                 value("DB_USER", ""),
		DBPassword:             value("DB_PASSWORD", ""),
		DBName:                 value("DB_NAME", ""),
		DBSslMode:              value("DB_SSLMODE", "disable"),
		JWTSecret:              value("JWT_SECRET", ""),
		RedisAddr:              value("REDIS_ADDR", ""),
		RedisPassword:          value("REDIS_PASSWORD", ""),
		LocationStore:          strings.ToLower(value("LOCATION_STORE", LocationStorePostgres)),
		EventBroker:            strings.ToLower(value("EVENT_BROKER", EventBrokerNone)),
		KafkaHost:              value("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: value("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		RabbitMQURL:            value("RABBITMQ_URL", ""),
		RabbitMQExchange:       value("RABBITMQ_EXCHANGE", "orders"),
		PaymentGatewayURL:      value("PAYMENT_GATEWAY_URL", ""),
		PaymentGatewayKey:      value("PAYMENT_GATEWAY_KEY", ""),
	}

	var err error
	if config.JWTTTL, err = time.ParseDuration(value("JWT_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("JWT_TTL: %w", err)
	}
	if config.MenuCacheTTL, err = time.ParseDuration(value("MENU_CACHE_TTL", "5m")); err != nil {
		return Config{}, fmt.Errorf("MENU_CACHE_TTL: %w", err)
	}
	if config.TaxRate, err = decimal.NewFromString(value("TAX_RATE", "8")); err != nil {
		return Config{}, fmt.Errorf("TAX_RATE: %w", err)
	}
	if config.RelayRejectInactiveOrders, err = strconv.ParseBool(value("RELAY_REJECT_INACTIVE_ORDERS", "false")); err != nil {
		return Config{}, fmt.Errorf("RELAY_REJECT_INACTIVE_ORDERS: %w", err)
	}
	if config.RelayRequireAuth, err = strconv.ParseBool(value("RELAY_REQUIRE_AUTH", "false")); err != nil {
		return Config{}, fmt.Errorf("RELAY_REQUIRE_AUTH: %w", err)
	}
	if config.OpenAPIValidate, err = strconv.ParseBool(value("OPENAPI_VALIDATE", "false")); err != nil {
		return Config{}, fmt.Errorf("OPENAPI_VALIDATE: %w", err)
	}

	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the combinations the composition root depends on.
func (c Config) Validate() error {
	var problems []error
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		problems = append(problems, fmt.Errorf("TAX_RATE must be a percent between 0 and 100, got %s", c.TaxRate))
	}

	switch c.LocationStore {
	case LocationStorePostgres:
	case LocationStoreRedis:
		if c.RedisAddr == "" {
			problems = append(problems, errors.New("LOCATION_STORE=redis requires REDIS_ADDR"))
		}
	default:
		problems = append(problems, fmt.Errorf("LOCATION_STORE %q is not one of postgres, redis", c.LocationStore))
	}

	switch c.EventBroker {
	case EventBrokerNone:
	case EventBrokerKafka:
		if c.KafkaHost == "" {
			problems = append(problems, errors.New("EVENT_BROKER=kafka requires KAFKA_HOST"))
		}
	case EventBrokerRabbitMQ:
		if c.RabbitMQURL == "" {
			problems = append(problems, errors.New("EVENT_BROKER=rabbitmq requires RABBITMQ_URL"))
		}
	default:
		problems = append(problems, fmt.Errorf("EVENT_BROKER %q is not one of none, kafka, rabbitmq", c.EventBroker))
	}

	return errors.Join(problems...)
}

func (c Config) DatabaseSettings() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SslMode:  c.DBSslMode,
	}
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
