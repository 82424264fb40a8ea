package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/review"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) FilterTerminal(ctx context.Context, ids []kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, ids)
	if out, ok := args.Get(0).([]kernel.UUID); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*restaurant.Restaurant); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRestaurantRepository) UpdateRating(ctx context.Context, id kernel.UUID, rating float64) error {
	return m.Called(ctx, id, rating).Error(0)
}

type MockPromotionRepository struct{ mock.Mock }

func (m *MockPromotionRepository) Add(ctx context.Context, p *promotion.Promotion) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPromotionRepository) Get(ctx context.Context, id kernel.UUID) (*promotion.Promotion, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*promotion.Promotion); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPromotionRepository) GetByCode(ctx context.Context, code string) (*promotion.Promotion, error) {
	args := m.Called(ctx, code)
	if p, ok := args.Get(0).(*promotion.Promotion); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPromotionRepository) Update(ctx context.Context, p *promotion.Promotion) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPromotionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPromotionRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*promotion.Promotion, error) {
	args := m.Called(ctx, now)
	if out, ok := args.Get(0).([]*promotion.Promotion); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPaymentMethodRepository struct{ mock.Mock }

func (m *MockPaymentMethodRepository) Add(ctx context.Context, p *payment.PaymentMethod) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentMethodRepository) Get(ctx context.Context, id kernel.UUID) (*payment.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*payment.PaymentMethod); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentMethodRepository) CountForUser(ctx context.Context, userID kernel.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentMethodRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Add(ctx context.Context, r *review.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) RatingStats(ctx context.Context, restaurantID kernel.UUID) (int, int, error) {
	args := m.Called(ctx, restaurantID)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Upsert(ctx context.Context, loc *tracking.DeliveryLocation) error {
	return m.Called(ctx, loc).Error(0)
}

func (m *MockLocationRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*tracking.DeliveryLocation, error) {
	args := m.Called(ctx, orderID)
	if loc, ok := args.Get(0).(*tracking.DeliveryLocation); ok {
		return loc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLocationRepository) ListOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if out, ok := args.Get(0).([]kernel.UUID); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLocationRepository) Delete(ctx context.Context, ids []kernel.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockBroadcaster struct{ mock.Mock }

func (m *MockBroadcaster) Broadcast(ctx context.Context, loc *tracking.DeliveryLocation) error {
	return m.Called(ctx, loc).Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) ResolvePaymentMethod(ctx context.Context, token string) (payment.CardDetails, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(payment.CardDetails), args.Error(1)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*restaurant.Restaurant); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	return m.Called().Get(0).(ports.RestaurantRepository)
}

func (m *MockUoW) PromotionRepository() ports.PromotionRepository {
	return m.Called().Get(0).(ports.PromotionRepository)
}

func (m *MockUoW) PaymentMethodRepository() ports.PaymentMethodRepository {
	return m.Called().Get(0).(ports.PaymentMethodRepository)
}

func (m *MockUoW) ReviewRepository() ports.ReviewRepository {
	return m.Called().Get(0).(ports.ReviewRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return m.Called().Get(0).(commands.CheckoutUoW)
}

type MockOrderStatusUoWFactory struct{ mock.Mock }

func (m *MockOrderStatusUoWFactory) Create() commands.OrderStatusUoW {
	return m.Called().Get(0).(commands.OrderStatusUoW)
}

type MockPaymentMethodUoWFactory struct{ mock.Mock }

func (m *MockPaymentMethodUoWFactory) Create() commands.PaymentMethodUoW {
	return m.Called().Get(0).(commands.PaymentMethodUoW)
}

type MockPromotionUoWFactory struct{ mock.Mock }

func (m *MockPromotionUoWFactory) Create() commands.PromotionUoW {
	return m.Called().Get(0).(commands.PromotionUoW)
}

type MockReviewUoWFactory struct{ mock.Mock }

func (m *MockReviewUoWFactory) Create() commands.ReviewUoW {
	return m.Called().Get(0).(commands.ReviewUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	return m.Called().Get(0).(commands.UserUoW)
}

func customer() user.Principal {
	return user.Principal{UserID: kernel.NewUUID(), Role: user.RoleCustomer}
}

func owner() user.Principal {
	return user.Principal{UserID: kernel.NewUUID(), Role: user.RoleRestaurantOwner}
}

func agent() user.Principal {
	return user.Principal{UserID: kernel.NewUUID(), Role: user.RoleDeliveryAgent}
}

type restaurantFixture struct {
	restaurant *restaurant.Restaurant
	burger     restaurant.MenuItem
	fries      restaurant.MenuItem
}

func newRestaurant(t *testing.T, ownerID kernel.UUID) restaurantFixture {
	t.Helper()
	f := restaurantFixture{
		burger: restaurant.MenuItem{ID: kernel.NewUUID(), Name: "Burger", Price: kernel.MustMoney("12.50"), Available: true},
		fries:  restaurant.MenuItem{ID: kernel.NewUUID(), Name: "Fries", Price: kernel.MustMoney("3.25"), Available: true},
	}
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, "Star Kabab", kernel.MustMoney("2.99"),
		30*time.Minute, 0, []restaurant.MenuItem{f.burger, f.fries})
	require.NoError(t, err)
	f.restaurant = r
	return f
}

// newOrder returns a pending order of userID at restaurantID.
func newOrder(t *testing.T, userID, restaurantID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Burger", 1, kernel.MustMoney("10.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), userID, restaurantID, []order.Item{item},
		order.Charges{DeliveryFee: kernel.MustMoney("2.00"), Tax: kernel.MustMoney("0.80")},
		order.Address{Street: "Road 12", City: "Dhaka"}, nil, time.Now(), 0)
	require.NoError(t, err)
	return o
}

// advance moves o through the lifecycle until it reaches target.
func advance(t *testing.T, o *order.Order, path ...order.Status) {
	t.Helper()
	for _, s := range path {
		require.NoError(t, o.ChangeStatus(s, time.Now()))
	}
}
