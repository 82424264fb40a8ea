package commands_test

import (
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreatePromotionCommand(t *testing.T) {
	_, err := commands.NewCreatePromotionCommand(kernel.NewUUID(), owner(), kernel.NewUUID(), "EID20",
		decimal.NewFromInt(20), time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, commands.CreatePromotionCommand{}.Validate(), commands.ErrCreatePromotionCommandIsNotConstructed)
}

func TestCreatePromotionCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	f := newRestaurant(t, ownerID)
	validUntil := time.Now().Add(48 * time.Hour)
	cmd, err := commands.NewCreatePromotionCommand(kernel.NewUUID(), user.Principal{UserID: ownerID, Role: user.RoleRestaurantOwner},
		f.restaurant.ID(), "eid20", decimal.NewFromInt(20), validUntil)
	require.NoError(t, err)

	uow := new(MockUoW)
	restaurants := new(MockRestaurantRepository)
	promos := new(MockPromotionRepository)
	factory := new(MockPromotionUoWFactory)
	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurants).Once(),
		restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once(),
		uow.On("PromotionRepository").Return(promos).Once(),
		promos.On("Add", ctx, mock.MatchedBy(func(p *promotion.Promotion) bool {
			return p.Code() == "EID20" && p.IsActive() && p.RestaurantID() == f.restaurant.ID() &&
				p.DiscountPercent().Equal(decimal.NewFromInt(20))
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreatePromotionCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	promos.AssertExpectations(t)
}

func TestCreatePromotionCommandHandler_Handle_Rejections(t *testing.T) {
	ownerID := kernel.NewUUID()
	f := newRestaurant(t, ownerID)
	me := user.Principal{UserID: ownerID, Role: user.RoleRestaurantOwner}

	tests := []struct {
		name       string
		caller     user.Principal
		percent    decimal.Decimal
		validUntil time.Time
		wantErr    error
	}{
		{name: "foreign restaurant", caller: owner(), percent: decimal.NewFromInt(10),
			validUntil: time.Now().Add(time.Hour), wantErr: errs.ErrAccessDenied},
		{name: "percent above 100", caller: me, percent: decimal.NewFromInt(150),
			validUntil: time.Now().Add(time.Hour), wantErr: errs.ErrValueIsOutOfRange},
		{name: "already expired", caller: me, percent: decimal.NewFromInt(10),
			validUntil: time.Now().Add(-time.Hour), wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewCreatePromotionCommand(kernel.NewUUID(), tt.caller, f.restaurant.ID(),
				"SAVE", tt.percent, tt.validUntil)
			require.NoError(t, err)

			uow := new(MockUoW)
			restaurants := new(MockRestaurantRepository)
			factory := new(MockPromotionUoWFactory)
			factory.On("Create").Return(uow).Once()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("RestaurantRepository").Return(restaurants).Once()
			restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			h := commands.NewCreatePromotionCommandHandler(factory)
			require.ErrorIs(t, h.Handle(ctx, cmd), tt.wantErr)
			uow.AssertNotCalled(t, "PromotionRepository")
			uow.AssertExpectations(t)
		})
	}
}

func TestDeletePromotionCommandHandler_Handle(t *testing.T) {
	ownerID := kernel.NewUUID()
	f := newRestaurant(t, ownerID)
	p, err := promotion.NewPromotion(kernel.NewUUID(), f.restaurant.ID(), "EID20", decimal.NewFromInt(20),
		time.Now().Add(time.Hour), time.Now())
	require.NoError(t, err)

	run := func(t *testing.T, caller user.Principal, wantDelete bool) error {
		ctx := t.Context()
		cmd, err := commands.NewDeletePromotionCommand(p.ID(), caller)
		require.NoError(t, err)

		uow := new(MockUoW)
		restaurants := new(MockRestaurantRepository)
		promos := new(MockPromotionRepository)
		factory := new(MockPromotionUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("PromotionRepository").Return(promos).Once()
		uow.On("RestaurantRepository").Return(restaurants).Once()
		promos.On("Get", ctx, p.ID()).Return(p, nil).Once()
		restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once()
		if wantDelete {
			promos.On("Delete", ctx, p.ID()).Return(nil).Once()
			uow.On("Commit", ctx).Return(nil).Once()
		}
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewDeletePromotionCommandHandler(factory)
		err = h.Handle(ctx, cmd)
		uow.AssertExpectations(t)
		promos.AssertExpectations(t)
		return err
	}

	t.Run("owner", func(t *testing.T) {
		require.NoError(t, run(t, user.Principal{UserID: ownerID, Role: user.RoleRestaurantOwner}, true))
	})

	t.Run("other owner", func(t *testing.T) {
		require.ErrorIs(t, run(t, owner(), false), errs.ErrAccessDenied)
	})
}

func TestDeactivateExpiredPromotionsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	restaurantID := kernel.NewUUID()

	expired, err := promotion.RestorePromotion(kernel.NewUUID(), restaurantID, "OLD", decimal.NewFromInt(5),
		now.Add(-time.Hour), true)
	require.NoError(t, err)
	alreadyOff, err := promotion.RestorePromotion(kernel.NewUUID(), restaurantID, "OFF", decimal.NewFromInt(5),
		now.Add(-time.Hour), false)
	require.NoError(t, err)

	uow := new(MockUoW)
	promos := new(MockPromotionRepository)
	factory := new(MockPromotionUoWFactory)
	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PromotionRepository").Return(promos).Once(),
		promos.On("ListExpiredActive", ctx, now).Return([]*promotion.Promotion{expired, alreadyOff}, nil).Once(),
		promos.On("Update", ctx, expired).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewDeactivateExpiredPromotionsCommandHandler(factory)
	n, err := h.Handle(ctx, commands.NewDeactivateExpiredPromotionsCommand(now))

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, expired.IsActive())
	promos.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeactivateExpiredPromotionsCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	expired, err := promotion.RestorePromotion(kernel.NewUUID(), kernel.NewUUID(), "OLD", decimal.NewFromInt(5),
		now.Add(-time.Hour), true)
	require.NoError(t, err)

	uow := new(MockUoW)
	promos := new(MockPromotionRepository)
	factory := new(MockPromotionUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PromotionRepository").Return(promos).Once()
	promos.On("ListExpiredActive", ctx, now).Return([]*promotion.Promotion{expired}, nil).Once()
	promos.On("Update", ctx, expired).Return(errors.New("update error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewDeactivateExpiredPromotionsCommandHandler(factory)
	n, err := h.Handle(ctx, commands.NewDeactivateExpiredPromotionsCommand(now))

	require.Error(t, err)
	assert.Zero(t, n)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
