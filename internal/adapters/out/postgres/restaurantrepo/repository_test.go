package restaurantrepo_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/adapters/out/postgres/testdb"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRestaurantRepository_Get(t *testing.T) {
	db := testdb.Open(t)
	ownerID := kernel.NewUUID()
	seeded := testdb.SeedRestaurant(t, db, ownerID)

	repo := restaurantrepo.NewGormRestaurantRepository(db)
	got, err := repo.Get(context.Background(), seeded.Restaurant.ID())
	require.NoError(t, err)

	assert.Equal(t, "Corner Diner", got.Name())
	assert.True(t, got.IsOwnedBy(ownerID))
	assert.Equal(t, "2.99", got.DeliveryFee().String())
	assert.Equal(t, 30*time.Minute, got.EstimatedDelivery())
	assert.Len(t, got.Menu(), 3)

	burger, err := got.OrderableItem(seeded.Burger.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.50", burger.Price.String())

	_, err = got.OrderableItem(seeded.SoldOut.ID)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGormRestaurantRepository_Add_KeepsUnavailableItems(t *testing.T) {
	db := testdb.Open(t)
	seeded := testdb.SeedRestaurant(t, db, kernel.NewUUID())

	var available []bool
	require.NoError(t, db.Model(&restaurantrepo.MenuItemDTO{}).
		Where("id IN ?", []any{seeded.SoldOut.ID.Bytes(), seeded.Burger.ID.Bytes()}).
		Order("name").
		Pluck("available", &available).Error)

	// Burger sorts before Seasonal pie.
	assert.Equal(t, []bool{true, false}, available)
}

func TestGormRestaurantRepository_Get_NotFound(t *testing.T) {
	repo := restaurantrepo.NewGormRestaurantRepository(testdb.Open(t))

	_, err := repo.Get(context.Background(), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormRestaurantRepository_UpdateRating(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	seeded := testdb.SeedRestaurant(t, db, kernel.NewUUID())
	repo := restaurantrepo.NewGormRestaurantRepository(db)

	require.NoError(t, repo.UpdateRating(ctx, seeded.Restaurant.ID(), 4.3))

	got, err := repo.Get(ctx, seeded.Restaurant.ID())
	require.NoError(t, err)
	assert.InDelta(t, 4.3, got.Rating(), 0.0001)

	err = repo.UpdateRating(ctx, kernel.NewUUID(), 5)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
