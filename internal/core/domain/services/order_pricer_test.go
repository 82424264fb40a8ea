package services_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type menuFixture struct {
	restaurant *restaurant.Restaurant
	burger     restaurant.MenuItem
	fries      restaurant.MenuItem
	soldOut    restaurant.MenuItem
}

func newMenuFixture(t *testing.T) menuFixture {
	t.Helper()
	f := menuFixture{
		burger:  restaurant.MenuItem{ID: kernel.NewUUID(), Name: "Burger", Price: kernel.MustMoney("12.50"), Available: true},
		fries:   restaurant.MenuItem{ID: kernel.NewUUID(), Name: "Fries", Price: kernel.MustMoney("3.25"), Available: true},
		soldOut: restaurant.MenuItem{ID: kernel.NewUUID(), Name: "Shake", Price: kernel.MustMoney("4.00"), Available: false},
	}
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), kernel.NewUUID(), "Star Kabab",
		kernel.MustMoney("2.99"), 30*time.Minute, 4.5,
		[]restaurant.MenuItem{f.burger, f.fries, f.soldOut})
	require.NoError(t, err)
	f.restaurant = r
	return f
}

func TestNewOrderPricer(t *testing.T) {
	_, err := services.NewOrderPricer(decimal.NewFromInt(-1))
	require.Error(t, err)

	_, err = services.NewOrderPricer(decimal.NewFromInt(101))
	require.Error(t, err)

	p, err := services.NewOrderPricer(services.DefaultTaxRate)
	require.NoError(t, err)
	assert.True(t, p.TaxRate().Equal(decimal.NewFromInt(8)))
}

func TestOrderPricer_Price(t *testing.T) {
	now := time.Now()
	f := newMenuFixture(t)
	pricer, err := services.NewOrderPricer(services.DefaultTaxRate)
	require.NoError(t, err)

	cart := []services.CartLine{
		{MenuItemID: f.burger.ID, Quantity: 2},
		{MenuItemID: f.fries.ID, Quantity: 1},
	}

	t.Run("should price lines from the menu and add tax and fee", func(t *testing.T) {
		quote, err := pricer.Price(f.restaurant, cart, nil, now)

		require.NoError(t, err)
		require.Len(t, quote.Items, 2)
		assert.Equal(t, "Burger", quote.Items[0].Name())
		assert.Equal(t, "12.50", quote.Items[0].UnitPrice().String())
		assert.Equal(t, "28.25", quote.Subtotal.String())
		assert.Equal(t, "2.26", quote.Charges.Tax.String())
		assert.Equal(t, "2.99", quote.Charges.DeliveryFee.String())
		assert.True(t, quote.Charges.Discount.IsZero())
		assert.Equal(t, "33.50", quote.Total().String())
	})

	t.Run("should apply promotion of the same restaurant", func(t *testing.T) {
		promo, err := promotion.NewPromotion(kernel.NewUUID(), f.restaurant.ID(), "eid20",
			decimal.NewFromInt(20), now.Add(time.Hour), now)
		require.NoError(t, err)

		quote, err := pricer.Price(f.restaurant, cart, promo, now)

		require.NoError(t, err)
		assert.Equal(t, "5.65", quote.Charges.Discount.String())
		assert.Equal(t, "EID20", quote.Charges.PromotionCode)
		assert.Equal(t, "27.85", quote.Total().String())
	})

	t.Run("should reject promotion of another restaurant", func(t *testing.T) {
		promo, err := promotion.NewPromotion(kernel.NewUUID(), kernel.NewUUID(), "OTHER",
			decimal.NewFromInt(20), now.Add(time.Hour), now)
		require.NoError(t, err)

		_, err = pricer.Price(f.restaurant, cart, promo, now)

		require.ErrorIs(t, err, promotion.ErrPromotionNotApplicable)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("should reject unavailable and foreign items", func(t *testing.T) {
		_, err := pricer.Price(f.restaurant, []services.CartLine{
			{MenuItemID: f.soldOut.ID, Quantity: 1},
			{MenuItemID: kernel.NewUUID(), Quantity: 1},
		}, nil, now)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "items[0]")
		assert.Contains(t, err.Error(), "items[1]")
	})

	t.Run("should reject empty cart and zero quantity", func(t *testing.T) {
		_, err := pricer.Price(f.restaurant, nil, nil, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = pricer.Price(f.restaurant, []services.CartLine{{MenuItemID: f.burger.ID, Quantity: 0}}, nil, now)
		require.Error(t, err)
	})

	t.Run("should reject restaurant not built by constructor", func(t *testing.T) {
		_, err := pricer.Price(&restaurant.Restaurant{}, cart, nil, now)
		require.ErrorIs(t, err, restaurant.ErrRestaurantIsNotConstructed)
	})
}
