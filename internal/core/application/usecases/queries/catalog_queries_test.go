package queries_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/paymentrepo"
	"fooddelivery/internal/adapters/out/postgres/promotionrepo"
	"fooddelivery/internal/adapters/out/postgres/reviewrepo"
	"fooddelivery/internal/adapters/out/postgres/testdb"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/core/domain/model/review"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

func TestListPromotionsQueryHandler_ActiveAndUnexpired(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	menu := testdb.SeedRestaurant(t, db, kernel.NewUUID())
	repo := promotionrepo.NewGormPromotionRepository(db, nopTracker{})
	now := placedAt

	add := func(code string, validUntil time.Time, active bool) *promotion.Promotion {
		p, err := promotion.RestorePromotion(kernel.NewUUID(), menu.Restaurant.ID(), code,
			decimal.RequireFromString("15"), validUntil, active)
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, p))
		return p
	}

	later := add("LATER", now.Add(48*time.Hour), true)
	soon := add("SOON", now.Add(time.Hour), true)
	add("OFF", now.Add(time.Hour), false)
	add("GONE", now.Add(-time.Hour), true)

	other := testdb.SeedRestaurant(t, db, kernel.NewUUID())
	p, err := promotion.RestorePromotion(kernel.NewUUID(), other.Restaurant.ID(), "ELSEWHERE",
		decimal.RequireFromString("10"), now.Add(time.Hour), true)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, p))

	query, err := queries.NewListPromotionsQuery(menu.Restaurant.ID(), now)
	require.NoError(t, err)
	views, err := queries.NewListPromotionsQueryHandler(db).Handle(ctx, query)
	require.NoError(t, err)

	require.Len(t, views, 2)
	assert.Equal(t, soon.ID(), views[0].ID)
	assert.Equal(t, "SOON", views[0].Code)
	assert.Equal(t, "15.00", views[0].DiscountPercent)
	assert.Equal(t, later.ID(), views[1].ID)

	_, err = queries.NewListPromotionsQuery(kernel.UUID{}, now)
	require.Error(t, err)
}

func TestListPaymentMethodsQueryHandler(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	customer := testdb.SeedUser(t, db, user.RoleCustomer, "ana@example.com", "hash")
	repo := paymentrepo.NewGormPaymentMethodRepository(db, nopTracker{})

	add := func(owner kernel.UUID, last4 string, isDefault bool, createdAt time.Time) *payment.PaymentMethod {
		pm, err := payment.NewPaymentMethod(kernel.NewUUID(), owner, "pm_"+last4,
			payment.CardDetails{Brand: "visa", Last4: last4, ExpiryMonth: 12, ExpiryYear: 2030},
			isDefault, createdAt)
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, pm))
		return pm
	}

	older := add(customer.ID(), "1111", false, placedAt)
	def := add(customer.ID(), "4242", true, placedAt.Add(time.Hour))
	newer := add(customer.ID(), "0005", false, placedAt.Add(2*time.Hour))
	add(kernel.NewUUID(), "9999", true, placedAt)

	handler := queries.NewListPaymentMethodsQueryHandler(db)
	views, err := handler.Handle(ctx, queries.NewListPaymentMethodsQuery(customer.Principal()))
	require.NoError(t, err)

	require.Len(t, views, 3)
	assert.Equal(t, def.ID(), views[0].ID)
	assert.True(t, views[0].IsDefault)
	assert.Equal(t, "4242", views[0].Last4)
	assert.Equal(t, older.ID(), views[1].ID)
	assert.Equal(t, newer.ID(), views[2].ID)

	agent := user.Principal{UserID: kernel.NewUUID(), Role: user.RoleDeliveryAgent}
	_, err = handler.Handle(ctx, queries.NewListPaymentMethodsQuery(agent))
	require.ErrorIs(t, err, errs.ErrAccessDenied)

	_, err = handler.Handle(ctx, queries.ListPaymentMethodsQuery{})
	require.ErrorIs(t, err, queries.ErrListPaymentMethodsQueryIsNotConstructed)
}

func TestListReviewsQueryHandler(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	menu := testdb.SeedRestaurant(t, db, kernel.NewUUID())
	ana := testdb.SeedUser(t, db, user.RoleCustomer, "ana@example.com", "hash")
	repo := reviewrepo.NewGormReviewRepository(db, nopTracker{})

	add := func(author kernel.UUID, item *kernel.UUID, rating int, comment string, at time.Time) *review.Review {
		r, err := review.NewReview(kernel.NewUUID(), author, menu.Restaurant.ID(), item, rating, comment, at)
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, r))
		return r
	}

	burgerID := menu.Burger.ID
	first := add(ana.ID(), &burgerID, 5, "great burger", placedAt)
	second := add(kernel.NewUUID(), nil, 2, "", placedAt.Add(time.Hour))

	handler := queries.NewListReviewsQueryHandler(db)

	query, err := queries.NewListReviewsQuery(menu.Restaurant.ID(), 0, 0)
	require.NoError(t, err)
	views, err := handler.Handle(ctx, query)
	require.NoError(t, err)

	require.Len(t, views, 2)
	assert.Equal(t, second.ID(), views[0].ID)
	assert.Empty(t, views[0].UserName)
	assert.Nil(t, views[0].MenuItemID)
	assert.Equal(t, first.ID(), views[1].ID)
	assert.Equal(t, ana.Name(), views[1].UserName)
	require.NotNil(t, views[1].MenuItemID)
	assert.Equal(t, burgerID, *views[1].MenuItemID)
	assert.Equal(t, 5, views[1].Rating)
	assert.Equal(t, "great burger", views[1].Comment)

	query, err = queries.NewListReviewsQuery(menu.Restaurant.ID(), 1, 1)
	require.NoError(t, err)
	views, err = handler.Handle(ctx, query)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, first.ID(), views[0].ID)

	_, err = queries.NewListReviewsQuery(menu.Restaurant.ID(), 0, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
