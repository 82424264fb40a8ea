package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler returns an order with its items. While the order is
// out for delivery the latest delivery location is embedded; a missing
// location is not an error, the field is simply left empty.
type GetOrderQueryHandler struct {
	db        *gorm.DB
	locations ports.DeliveryLocationRepository
}

func NewGetOrderQueryHandler(db *gorm.DB, locations ports.DeliveryLocationRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, locations: locations}
}

// Handle enforces read access: the customer who placed the order, the owner
// of its restaurant, or any delivery agent.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	principal := query.Principal()
	if err := principal.Validate(); err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	views, err := scanOrders(rows)
	if err != nil {
		return OrderView{}, err
	}
	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if err = h.authorize(ctx, principal, views[0]); err != nil {
		return OrderView{}, err
	}

	if err = attachItems(ctx, h.db, views); err != nil {
		return OrderView{}, err
	}
	view := views[0]

	if view.Status == order.OutForDelivery {
		loc, locErr := h.locations.GetByOrder(ctx, view.ID)
		switch {
		case locErr == nil:
			view.Location = NewLocationView(loc)
		case !errors.Is(locErr, errs.ErrObjectNotFound):
			return OrderView{}, locErr
		}
	}

	return view, nil
}

func (h GetOrderQueryHandler) authorize(ctx context.Context, principal user.Principal, view OrderView) error {
	switch principal.Role {
	case user.RoleCustomer:
		if view.UserID.IsEqual(principal.UserID) {
			return nil
		}
	case user.RoleRestaurantOwner:
		owns, err := ownsRestaurant(ctx, h.db, principal, view.RestaurantID.Bytes())
		if err != nil || owns {
			return err
		}
	case user.RoleDeliveryAgent:
		return nil
	}
	return errs.NewAccessDeniedError("order belongs to another account")
}
