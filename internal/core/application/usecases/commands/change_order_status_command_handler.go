package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies the status transition guard and
// persists the change with a conditional write, so two concurrent requests
// starting from the same status cannot both succeed.
//
// Who may change what:
//   - the owner of the order's restaurant: any legal transition
//   - the customer who placed the order: pending -> cancelled only
//
// Example:
//
//	cmd, _ := NewChangeOrderStatusCommand(orderID, owner, order.Confirmed)
//	err := handler.Handle(ctx, cmd)
//	var illegal *errs.IllegalTransitionError
//	if errors.As(err, &illegal) {
//	    fmt.Println("allowed next:", illegal.Allowed)
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderStatusUoWFactory
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderStatusUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle returns errs.ObjectNotFoundError for an unknown order,
// errs.AccessDeniedError when the caller may not change it and
// errs.IllegalTransitionError when the guard rejects the move or another
// request changed the status first.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Principal()
	if err := caller.Require(user.RoleRestaurantOwner, user.RoleCustomer); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.authorize(ctx, uow, caller, o, cmd.Status()); err != nil {
		return err
	}

	expected := o.Status()
	if err = o.ChangeStatus(cmd.Status(), time.Now()); err != nil {
		return err
	}

	if err = repo.UpdateStatus(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ChangeOrderStatusCommandHandler) authorize(
	ctx context.Context,
	uow OrderStatusUoW,
	caller user.Principal,
	o *order.Order,
	requested order.Status,
) error {
	switch caller.Role {
	case user.RoleCustomer:
		if !o.IsOwnedBy(caller.UserID) {
			return errs.NewAccessDeniedError("order belongs to another customer")
		}
		if requested != order.Cancelled || o.Status() != order.Pending {
			return errs.NewAccessDeniedError("customers may only cancel pending orders")
		}
		return nil
	case user.RoleRestaurantOwner:
		r, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
		if err != nil {
			return err
		}
		if !r.IsOwnedBy(caller.UserID) {
			return errs.NewAccessDeniedError("order belongs to another restaurant")
		}
		return nil
	default:
		return errs.NewAccessDeniedError("role " + caller.Role.String() + " may not change order status")
	}
}
