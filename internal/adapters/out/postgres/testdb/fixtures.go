package testdb

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// Menu is the catalog seeded by SeedRestaurant.
type Menu struct {
	Restaurant *restaurant.Restaurant
	Burger     restaurant.MenuItem
	Fries      restaurant.MenuItem
	SoldOut    restaurant.MenuItem
}

// SeedRestaurant stores a restaurant owned by ownerID with a burger (12.50),
// fries (3.25) and an unavailable item, a 2.99 delivery fee and a 30 minute
// delivery estimate.
func SeedRestaurant(t testing.TB, db *gorm.DB, ownerID kernel.UUID) Menu {
	t.Helper()

	menu := Menu{
		Burger:  restaurant.MenuItem{ID: kernel.NewUUID(), Name: "Burger", Price: kernel.MustMoney("12.50"), Available: true},
		Fries:   restaurant.MenuItem{ID: kernel.NewUUID(), Name: "Fries", Price: kernel.MustMoney("3.25"), Available: true},
		SoldOut: restaurant.MenuItem{ID: kernel.NewUUID(), Name: "Seasonal pie", Price: kernel.MustMoney("6.00")},
	}

	r, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, "Corner Diner",
		kernel.MustMoney("2.99"), 30*time.Minute, 0,
		[]restaurant.MenuItem{menu.Burger, menu.Fries, menu.SoldOut})
	require.NoError(t, err)
	require.NoError(t, restaurantrepo.NewGormRestaurantRepository(db).Add(context.Background(), r))

	menu.Restaurant = r
	return menu
}

// SeedUser stores a user with the given role. passwordHash is stored as is.
func SeedUser(t testing.TB, db *gorm.DB, role user.Role, email, passwordHash string) *user.User {
	t.Helper()

	u, err := user.NewUser(kernel.NewUUID(), "Test "+role.String(), email, passwordHash, role, time.Now())
	require.NoError(t, err)
	require.NoError(t, userrepo.NewGormUserRepository(db, noopTracker{}).Add(context.Background(), u))
	return u
}

// SeedOrder places an order of two burgers and one fries from menu for
// customerID at placedAt, then walks it through path. The total is 33.50
// (28.25 + 2.99 fee + 2.26 tax, no discount).
func SeedOrder(
	t testing.TB,
	db *gorm.DB,
	customerID kernel.UUID,
	menu Menu,
	placedAt time.Time,
	path ...order.Status,
) *order.Order {
	t.Helper()
	ctx := context.Background()

	burger, err := order.NewItem(menu.Burger.ID, menu.Burger.Name, 2, menu.Burger.Price)
	require.NoError(t, err)
	fries, err := order.NewItem(menu.Fries.ID, menu.Fries.Name, 1, menu.Fries.Price)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customerID, menu.Restaurant.ID(),
		[]order.Item{burger, fries},
		order.Charges{
			DeliveryFee: menu.Restaurant.DeliveryFee(),
			Tax:         kernel.MustMoney("2.26"),
			Discount:    kernel.Zero,
		},
		order.Address{Street: "1 Main St", City: "Springfield", PostalCode: "12345"},
		nil, placedAt, menu.Restaurant.EstimatedDelivery())
	require.NoError(t, err)

	repo := orderrepo.NewGormOrderRepository(db, noopTracker{})
	require.NoError(t, repo.Add(ctx, o))

	at := placedAt
	for _, next := range path {
		expected := o.Status()
		at = at.Add(time.Minute)
		require.NoError(t, o.ChangeStatus(next, at))
		require.NoError(t, repo.UpdateStatus(ctx, o, expected))
	}
	o.ClearDomainEvents()
	return o
}
