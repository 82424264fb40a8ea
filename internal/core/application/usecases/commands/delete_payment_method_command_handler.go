package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

type DeletePaymentMethodCommandHandler struct {
	uowFactory PaymentMethodUoWFactory
}

func NewDeletePaymentMethodCommandHandler(uowFactory PaymentMethodUoWFactory) DeletePaymentMethodCommandHandler {
	return DeletePaymentMethodCommandHandler{uowFactory: uowFactory}
}

// Handle deletes a saved card of the caller. Orders already paid with it
// keep their payment snapshot.
func (h *DeletePaymentMethodCommandHandler) Handle(ctx context.Context, cmd DeletePaymentMethodCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	owner := cmd.Principal()
	if err := owner.Require(user.RoleCustomer); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PaymentMethodRepository()
	pm, err := repo.Get(ctx, cmd.ID())
	if err != nil {
		return err
	}
	if !pm.IsOwnedBy(owner.UserID) {
		return errs.NewAccessDeniedError("payment method belongs to another user")
	}

	if err = repo.Delete(ctx, pm.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
