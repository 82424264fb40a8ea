package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
)

// AddPaymentMethodCommandHandler resolves the token at the gateway and
// stores the card metadata. A user's first card becomes the default.
type AddPaymentMethodCommandHandler struct {
	uowFactory PaymentMethodUoWFactory
	gateway    ports.PaymentGateway
}

func NewAddPaymentMethodCommandHandler(
	uowFactory PaymentMethodUoWFactory,
	gateway ports.PaymentGateway,
) AddPaymentMethodCommandHandler {
	return AddPaymentMethodCommandHandler{uowFactory: uowFactory, gateway: gateway}
}

func (h *AddPaymentMethodCommandHandler) Handle(ctx context.Context, cmd AddPaymentMethodCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	owner := cmd.Principal()
	if err := owner.Require(user.RoleCustomer); err != nil {
		return err
	}

	card, err := h.gateway.ResolvePaymentMethod(ctx, cmd.Token())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PaymentMethodRepository()
	existing, err := repo.CountForUser(ctx, owner.UserID)
	if err != nil {
		return err
	}

	pm, err := payment.NewPaymentMethod(cmd.ID(), owner.UserID, cmd.Token(), card, existing == 0, time.Now())
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, pm); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
