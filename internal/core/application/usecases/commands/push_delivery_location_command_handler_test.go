package commands_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewPushDeliveryLocationCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewPushDeliveryLocationCommand(orderID, 90.4125, 23.8103)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.InDelta(t, 90.4125, cmd.Point().Longitude(), 1e-9)
	assert.InDelta(t, 23.8103, cmd.Point().Latitude(), 1e-9)

	_, err = commands.NewPushDeliveryLocationCommand(orderID, 200, 23.8)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewPushDeliveryLocationCommand(orderID, 90.4, -91)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewPushDeliveryLocationCommand(kernel.UUID{}, 90.4, 23.8)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func isLocation(orderID kernel.UUID, lon, lat float64) any {
	return mock.MatchedBy(func(loc *tracking.DeliveryLocation) bool {
		return loc.OrderID() == orderID && loc.Longitude() == lon && loc.Latitude() == lat
	})
}

func TestPushDeliveryLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewPushDeliveryLocationCommand(orderID, 90.4125, 23.8103)
	require.NoError(t, err)

	locations := new(MockLocationRepository)
	broadcaster := new(MockBroadcaster)
	mock.InOrder(
		locations.On("Upsert", ctx, isLocation(orderID, 90.4125, 23.8103)).Return(nil).Once(),
		broadcaster.On("Broadcast", ctx, isLocation(orderID, 90.4125, 23.8103)).Return(nil).Once(),
	)

	h := commands.NewPushDeliveryLocationCommandHandler(locations, broadcaster)
	loc, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, orderID, loc.OrderID())
	assert.False(t, loc.UpdatedAt().IsZero())
	locations.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

// Without inactive-order rejection any id is accepted, even one with no order.
func TestPushDeliveryLocationCommandHandler_Handle_UnknownOrderAccepted(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPushDeliveryLocationCommand(kernel.NewUUID(), 1, 2)
	require.NoError(t, err)

	locations := new(MockLocationRepository)
	broadcaster := new(MockBroadcaster)
	locations.On("Upsert", ctx, mock.Anything).Return(nil).Once()
	broadcaster.On("Broadcast", ctx, mock.Anything).Return(nil).Once()

	h := commands.NewPushDeliveryLocationCommandHandler(locations, broadcaster)
	_, err = h.Handle(ctx, cmd)

	require.NoError(t, err)
}

func TestPushDeliveryLocationCommandHandler_Handle_BroadcastFailure(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPushDeliveryLocationCommand(kernel.NewUUID(), 1, 2)
	require.NoError(t, err)

	locations := new(MockLocationRepository)
	broadcaster := new(MockBroadcaster)
	locations.On("Upsert", ctx, mock.Anything).Return(nil).Once()
	broadcaster.On("Broadcast", ctx, mock.Anything).Return(errors.New("redis down")).Once()

	h := commands.NewPushDeliveryLocationCommandHandler(locations, broadcaster)
	loc, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBroadcastFailed)
	assert.Contains(t, err.Error(), "redis down")
	require.NotNil(t, loc)
}

func TestPushDeliveryLocationCommandHandler_Handle_UpsertFailure(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPushDeliveryLocationCommand(kernel.NewUUID(), 1, 2)
	require.NoError(t, err)

	locations := new(MockLocationRepository)
	broadcaster := new(MockBroadcaster)
	locations.On("Upsert", ctx, mock.Anything).Return(errors.New("db down")).Once()

	h := commands.NewPushDeliveryLocationCommandHandler(locations, broadcaster)
	loc, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, loc)
	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
}

func TestPushDeliveryLocationCommandHandler_RejectInactiveOrders(t *testing.T) {
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	active := newOrder(t, customerID, restaurantID)
	advance(t, active, order.Confirmed, order.Preparing, order.OutForDelivery)
	delivered := newOrder(t, customerID, restaurantID)
	advance(t, delivered, order.Confirmed, order.Preparing, order.OutForDelivery, order.Delivered)
	missing := kernel.NewUUID()

	tests := []struct {
		name    string
		orderID kernel.UUID
		found   *order.Order
		wantErr bool
	}{
		{name: "out for delivery", orderID: active.ID(), found: active},
		{name: "delivered", orderID: delivered.ID(), found: delivered, wantErr: true},
		{name: "unknown", orderID: missing, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewPushDeliveryLocationCommand(tt.orderID, 1, 2)
			require.NoError(t, err)

			uow := new(MockUoW)
			repo := new(MockOrderRepository)
			factory := new(MockOrderUoWFactory)
			locations := new(MockLocationRepository)
			broadcaster := new(MockBroadcaster)

			factory.On("Create").Return(uow).Once()
			uow.On("OrderRepository").Return(repo).Once()
			if tt.found != nil {
				repo.On("Get", ctx, tt.orderID).Return(tt.found, nil).Once()
			} else {
				repo.On("Get", ctx, tt.orderID).Return(nil, errs.NewObjectNotFoundError("order", tt.orderID)).Once()
			}
			if !tt.wantErr {
				locations.On("Upsert", ctx, mock.Anything).Return(nil).Once()
				broadcaster.On("Broadcast", ctx, mock.Anything).Return(nil).Once()
			}

			h := commands.NewPushDeliveryLocationCommandHandler(locations, broadcaster).RejectInactiveOrders(factory)
			_, err = h.Handle(ctx, cmd)

			if tt.wantErr {
				require.ErrorIs(t, err, commands.ErrOrderNotTrackable)
				locations.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			uow.AssertNotCalled(t, "Begin", mock.Anything)
			locations.AssertExpectations(t)
			broadcaster.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}

func TestPurgeDeliveryLocationsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	live, done, gone := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	locations := new(MockLocationRepository)
	uow := new(MockUoW)
	repo := new(MockOrderRepository)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		locations.On("ListOrderIDs", ctx).Return([]kernel.UUID{live, done, gone}, nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("FilterTerminal", ctx, []kernel.UUID{live, done, gone}).Return([]kernel.UUID{done, gone}, nil).Once(),
		locations.On("Delete", ctx, []kernel.UUID{done, gone}).Return(int64(2), nil).Once(),
	)

	h := commands.NewPurgeDeliveryLocationsCommandHandler(locations, factory)
	n, err := h.Handle(ctx, commands.NewPurgeDeliveryLocationsCommand())

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	locations.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestPurgeDeliveryLocationsCommandHandler_Handle_NothingToDelete(t *testing.T) {
	ctx := t.Context()

	t.Run("no locations", func(t *testing.T) {
		locations := new(MockLocationRepository)
		factory := new(MockOrderUoWFactory)
		locations.On("ListOrderIDs", ctx).Return([]kernel.UUID{}, nil).Once()

		h := commands.NewPurgeDeliveryLocationsCommandHandler(locations, factory)
		n, err := h.Handle(ctx, commands.NewPurgeDeliveryLocationsCommand())

		require.NoError(t, err)
		assert.Zero(t, n)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("all orders active", func(t *testing.T) {
		id := kernel.NewUUID()
		locations := new(MockLocationRepository)
		uow := new(MockUoW)
		repo := new(MockOrderRepository)
		factory := new(MockOrderUoWFactory)
		locations.On("ListOrderIDs", ctx).Return([]kernel.UUID{id}, nil).Once()
		factory.On("Create").Return(uow).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("FilterTerminal", ctx, []kernel.UUID{id}).Return([]kernel.UUID{}, nil).Once()

		h := commands.NewPurgeDeliveryLocationsCommandHandler(locations, factory)
		n, err := h.Handle(ctx, commands.NewPurgeDeliveryLocationsCommand())

		require.NoError(t, err)
		assert.Zero(t, n)
		locations.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not constructed", func(t *testing.T) {
		h := commands.NewPurgeDeliveryLocationsCommandHandler(new(MockLocationRepository), new(MockOrderUoWFactory))
		_, err := h.Handle(ctx, commands.PurgeDeliveryLocationsCommand{})
		require.ErrorIs(t, err, commands.ErrPurgeDeliveryLocationsCommandIsNotConstructed)
	})
}
