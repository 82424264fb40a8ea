package commands_test

import (
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func visa() payment.CardDetails {
	return payment.CardDetails{Brand: "visa", Last4: "4242", ExpiryMonth: 12, ExpiryYear: time.Now().Year() + 3}
}

func TestNewAddPaymentMethodCommand(t *testing.T) {
	_, err := commands.NewAddPaymentMethodCommand(kernel.NewUUID(), customer(), "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewAddPaymentMethodCommand(kernel.NewUUID(), customer(), "pm_1")
	require.NoError(t, err)
	assert.Equal(t, "pm_1", cmd.Token())
}

func TestAddPaymentMethodCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name        string
		existing    int64
		wantDefault bool
	}{
		{name: "first card becomes default", existing: 0, wantDefault: true},
		{name: "second card is not default", existing: 1, wantDefault: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			caller := customer()
			cmd, err := commands.NewAddPaymentMethodCommand(kernel.NewUUID(), caller, "pm_1")
			require.NoError(t, err)

			gateway := new(MockPaymentGateway)
			uow := new(MockUoW)
			repo := new(MockPaymentMethodRepository)
			factory := new(MockPaymentMethodUoWFactory)

			mock.InOrder(
				gateway.On("ResolvePaymentMethod", ctx, "pm_1").Return(visa(), nil).Once(),
				factory.On("Create").Return(uow).Once(),
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("PaymentMethodRepository").Return(repo).Once(),
				repo.On("CountForUser", ctx, caller.UserID).Return(tt.existing, nil).Once(),
				repo.On("Add", ctx, mock.MatchedBy(func(pm *payment.PaymentMethod) bool {
					return pm.IsOwnedBy(caller.UserID) && pm.IsDefault() == tt.wantDefault &&
						pm.Card().Last4 == "4242" && pm.Token() == "pm_1"
				})).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			h := commands.NewAddPaymentMethodCommandHandler(factory, gateway)
			require.NoError(t, h.Handle(ctx, cmd))
			gateway.AssertExpectations(t)
			uow.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}

func TestAddPaymentMethodCommandHandler_Handle_GatewayFailure(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddPaymentMethodCommand(kernel.NewUUID(), customer(), "pm_1")
	require.NoError(t, err)

	gateway := new(MockPaymentGateway)
	factory := new(MockPaymentMethodUoWFactory)
	gateway.On("ResolvePaymentMethod", ctx, "pm_1").
		Return(payment.CardDetails{}, errs.NewUpstreamError("payment gateway", errors.New("timeout"))).Once()

	h := commands.NewAddPaymentMethodCommandHandler(factory, gateway)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
	factory.AssertNotCalled(t, "Create")
}

func TestAddPaymentMethodCommandHandler_Handle_OnlyCustomers(t *testing.T) {
	cmd, err := commands.NewAddPaymentMethodCommand(kernel.NewUUID(), owner(), "pm_1")
	require.NoError(t, err)

	gateway := new(MockPaymentGateway)
	h := commands.NewAddPaymentMethodCommandHandler(new(MockPaymentMethodUoWFactory), gateway)

	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrAccessDenied)
	gateway.AssertNotCalled(t, "ResolvePaymentMethod", mock.Anything, mock.Anything)
}

func TestDeletePaymentMethodCommandHandler_Handle(t *testing.T) {
	caller := customer()
	pm, err := payment.NewPaymentMethod(kernel.NewUUID(), caller.UserID, "pm_1", visa(), true, time.Now())
	require.NoError(t, err)

	t.Run("own card", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewDeletePaymentMethodCommand(pm.ID(), caller)
		require.NoError(t, err)

		uow := new(MockUoW)
		repo := new(MockPaymentMethodRepository)
		factory := new(MockPaymentMethodUoWFactory)
		factory.On("Create").Return(uow).Once()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("PaymentMethodRepository").Return(repo).Once(),
			repo.On("Get", ctx, pm.ID()).Return(pm, nil).Once(),
			repo.On("Delete", ctx, pm.ID()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewDeletePaymentMethodCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("someone else's card", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewDeletePaymentMethodCommand(pm.ID(), customer())
		require.NoError(t, err)

		uow := new(MockUoW)
		repo := new(MockPaymentMethodRepository)
		factory := new(MockPaymentMethodUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("PaymentMethodRepository").Return(repo).Once()
		repo.On("Get", ctx, pm.ID()).Return(pm, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewDeletePaymentMethodCommandHandler(factory)
		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrAccessDenied)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("unknown card", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewDeletePaymentMethodCommand(id, user.Principal{UserID: caller.UserID, Role: user.RoleCustomer})
		require.NoError(t, err)

		uow := new(MockUoW)
		repo := new(MockPaymentMethodRepository)
		factory := new(MockPaymentMethodUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("PaymentMethodRepository").Return(repo).Once()
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("paymentMethod", id)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewDeletePaymentMethodCommandHandler(factory)
		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	})
}
