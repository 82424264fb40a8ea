package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/ports"

	goredis "github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
)

const menuKeyPrefix = "menu:"

// cacheClient is the part of *goredis.Client the cache uses.
type cacheClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

type cachedMenuItem struct {
	ID        kernel.UUID `json:"id"`
	Name      string      `json:"name"`
	Price     string      `json:"price"`
	Available bool        `json:"available"`
}

type cachedRestaurant struct {
	ID          kernel.UUID      `json:"id"`
	OwnerID     kernel.UUID      `json:"ownerId"`
	Name        string           `json:"name"`
	DeliveryFee string           `json:"deliveryFee"`
	ETASeconds  int64            `json:"etaSeconds"`
	Rating      float64          `json:"rating"`
	Menu        []cachedMenuItem `json:"menu"`
}

// CachedMenuCatalog is a read-through cache over another MenuCatalog.
// Redis failures are logged and the request falls through to the wrapped
// catalog, so the cache never makes checkout fail. Concurrent misses for
// the same restaurant share one load.
type CachedMenuCatalog struct {
	next   ports.MenuCatalog
	client cacheClient
	ttl    time.Duration
	loads  singleflight.Group
	logger *slog.Logger
}

var _ ports.MenuCatalog = (*CachedMenuCatalog)(nil)

func NewCachedMenuCatalog(
	next ports.MenuCatalog,
	client cacheClient,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedMenuCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedMenuCatalog{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "MenuCache"),
	}
}

func (c *CachedMenuCatalog) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	key := menuKeyPrefix + id.String()

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		r, decodeErr := decodeRestaurant(raw)
		if decodeErr == nil {
			return r, nil
		}
		c.logger.WarnContext(ctx, "Dropping unreadable cache entry", "key", key, "error", decodeErr)
	case !errors.Is(err, goredis.Nil):
		c.logger.WarnContext(ctx, "Menu cache read failed", "key", key, "error", err)
	}

	v, err, _ := c.loads.Do(key, func() (any, error) {
		return c.load(ctx, key, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*restaurant.Restaurant), nil
}

func (c *CachedMenuCatalog) load(ctx context.Context, key string, id kernel.UUID) (*restaurant.Restaurant, error) {
	r, err := c.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(encodeRestaurant(r))
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to encode menu for cache", "key", key, "error", err)
		return r, nil
	}
	if err = c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Menu cache write failed", "key", key, "error", err)
	}

	return r, nil
}

// Invalidate drops the cached menu of a restaurant.
func (c *CachedMenuCatalog) Invalidate(ctx context.Context, id kernel.UUID) error {
	return c.client.Del(ctx, menuKeyPrefix+id.String()).Err()
}

func encodeRestaurant(r *restaurant.Restaurant) cachedRestaurant {
	menu := r.Menu()
	items := make([]cachedMenuItem, 0, len(menu))
	for _, item := range menu {
		items = append(items, cachedMenuItem{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price.String(),
			Available: item.Available,
		})
	}

	return cachedRestaurant{
		ID:          r.ID(),
		OwnerID:     r.OwnerID(),
		Name:        r.Name(),
		DeliveryFee: r.DeliveryFee().String(),
		ETASeconds:  int64(r.EstimatedDelivery() / time.Second),
		Rating:      r.Rating(),
		Menu:        items,
	}
}

func decodeRestaurant(raw []byte) (*restaurant.Restaurant, error) {
	var cached cachedRestaurant
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, err
	}

	fee, err := kernel.MoneyFromString(cached.DeliveryFee)
	if err != nil {
		return nil, err
	}

	menu := make([]restaurant.MenuItem, 0, len(cached.Menu))
	for _, item := range cached.Menu {
		price, priceErr := kernel.MoneyFromString(item.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		menu = append(menu, restaurant.MenuItem{
			ID:        item.ID,
			Name:      item.Name,
			Price:     price,
			Available: item.Available,
		})
	}

	return restaurant.NewRestaurant(cached.ID, cached.OwnerID, cached.Name, fee,
		time.Duration(cached.ETASeconds)*time.Second, cached.Rating, menu)
}
