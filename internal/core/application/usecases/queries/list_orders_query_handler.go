package queries

import (
	"context"
	"strings"

	"fooddelivery/internal/core/domain/model/user"

	"gorm.io/gorm"
)

type ListUserOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListUserOrdersQueryHandler(db *gorm.DB) ListUserOrdersQueryHandler {
	return ListUserOrdersQueryHandler{db: db}
}

// Handle lists the caller's own orders. Only customers place orders.
func (h ListUserOrdersQueryHandler) Handle(ctx context.Context, query ListUserOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.principal.Require(user.RoleCustomer); err != nil {
		return nil, err
	}

	return listOrders(ctx, h.db,
		"FROM orders o",
		"o.user_id = ?", query.principal.UserID.Bytes(),
		query.filter)
}

type ListRestaurantOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListRestaurantOrdersQueryHandler(db *gorm.DB) ListRestaurantOrdersQueryHandler {
	return ListRestaurantOrdersQueryHandler{db: db}
}

func (h ListRestaurantOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListRestaurantOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.principal.Require(user.RoleRestaurantOwner); err != nil {
		return nil, err
	}

	return listOrders(ctx, h.db,
		"FROM orders o JOIN restaurants r ON r.id = o.restaurant_id",
		"r.owner_id = ?", query.principal.UserID.Bytes(),
		query.filter)
}

// listOrders pages through orders matching scope, newest first. Ties on
// created_at are broken by id so pages are stable.
func listOrders(ctx context.Context, db *gorm.DB, from, scope string, scopeArg any, filter OrderFilter) ([]OrderView, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + orderColumns + "\n" + from + "\nWHERE " + scope)
	args := []any{scopeArg}

	if filter.Status != nil {
		sb.WriteString(" AND o.status = ?")
		args = append(args, filter.Status.String())
	}
	sb.WriteString("\nORDER BY o.created_at DESC, o.id DESC\nLIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := db.WithContext(ctx).Raw(sb.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	if err = attachItems(ctx, db, views); err != nil {
		return nil, err
	}

	return views, nil
}
