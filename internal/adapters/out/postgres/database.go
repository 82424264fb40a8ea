package postgres

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"fooddelivery/internal/adapters/out/postgres/locationrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/paymentrepo"
	"fooddelivery/internal/adapters/out/postgres/promotionrepo"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/adapters/out/postgres/reviewrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionSettings are the DB_* values of the service configuration.
type ConnectionSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SslMode  string
}

// DSN renders the settings as a postgres:// URL.
func (s ConnectionSettings) DSN() string {
	sslMode := s.SslMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.User, s.Password),
		Host:     fmt.Sprintf("%s:%s", s.Host, s.Port),
		Path:     "/" + s.Name,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}

// Open connects to dsn, creating the database first when it does not exist,
// and migrates every table the service owns.
func Open(dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	if err := EnsureDatabase(dsn); err != nil {
		return nil, fmt.Errorf("ensure database: %w", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err = Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Models lists the persistence models in dependency order.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&restaurantrepo.RestaurantDTO{},
		&restaurantrepo.MenuItemDTO{},
		&promotionrepo.PromotionDTO{},
		&paymentrepo.PaymentMethodDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&reviewrepo.ReviewDTO{},
		&locationrepo.DeliveryLocationDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}

	return nil
}

// EnsureDatabase creates the database named in a postgres:// URL through the
// maintenance database. Key/value DSNs are left alone.
func EnsureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	sqlDB, err := sql.Open("postgres", parsed.String())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err = sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err = sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
