package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders. The restaurant and its menu are
// read from the catalog before the transaction starts; the promotion and
// the saved card are read inside it, next to the insert.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, pricer)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	// the order is pending and OrderCreated is published
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	catalog    ports.MenuCatalog
	pricer     services.OrderPricer
}

func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	catalog ports.MenuCatalog,
	pricer services.OrderPricer,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricer:     pricer,
	}
}

// Handle prices the cart, fixes the total and stores the order as pending.
// Only customers may check out.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	customer := cmd.Principal()
	if err := customer.Require(user.RoleCustomer); err != nil {
		return err
	}

	r, err := h.catalog.Get(ctx, cmd.RestaurantID())
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

	now := time.Now()

	var promo *promotion.Promotion
	if code := cmd.PromotionCode(); code != "" {
		promo, err = uow.PromotionRepository().GetByCode(ctx, code)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewValueIsInvalidErrorWithCause("promotionCode", err)
		}
		if err != nil {
			return err
		}
	}

	var payment *order.PaymentSnapshot
	if id := cmd.PaymentMethodID(); id != nil {
		pm, pmErr := uow.PaymentMethodRepository().Get(ctx, *id)
		if errors.Is(pmErr, errs.ErrObjectNotFound) {
			return errs.NewValueIsInvalidErrorWithCause("paymentMethodId", pmErr)
		}
		if pmErr != nil {
			return pmErr
		}
		if err = pm.EnsureUsableFor(customer.UserID, now); err != nil {
			return err
		}
		snapshot := pm.Snapshot()
		payment = &snapshot
	}

	quote, err := h.pricer.Price(r, cmd.Lines(), promo, now)
	if err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		customer.UserID,
		r.ID(),
		quote.Items,
		quote.Charges,
		cmd.Address(),
		payment,
		now,
		r.EstimatedDelivery(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
