package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryLocationQueryHandler serves the location store to the order's
// customer and restaurant owner, and to delivery agents. Agents may read
// locations of ids that match no order, since the store accepts those.
type GetDeliveryLocationQueryHandler struct {
	db        *gorm.DB
	locations ports.DeliveryLocationRepository
}

func NewGetDeliveryLocationQueryHandler(
	db *gorm.DB,
	locations ports.DeliveryLocationRepository,
) GetDeliveryLocationQueryHandler {
	return GetDeliveryLocationQueryHandler{db: db, locations: locations}
}

func (h GetDeliveryLocationQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryLocationQuery,
) (*LocationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.principal.Validate(); err != nil {
		return nil, err
	}

	if query.principal.Role != user.RoleDeliveryAgent {
		if err := h.authorize(ctx, query); err != nil {
			return nil, err
		}
	}

	loc, err := h.locations.GetByOrder(ctx, query.orderID)
	if err != nil {
		return nil, err
	}

	return NewLocationView(loc), nil
}

func (h GetDeliveryLocationQueryHandler) authorize(ctx context.Context, query GetDeliveryLocationQuery) error {
	ok, err := isOrderParticipant(ctx, h.db, query.principal, query.orderID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewAccessDeniedError("order belongs to another account")
	}
	return nil
}
