package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// OrderWatchAuthorizer decides who may follow an order's live location over
// the relay: the customer who placed it and the owner of its restaurant.
type OrderWatchAuthorizer struct {
	db *gorm.DB
}

func NewOrderWatchAuthorizer(db *gorm.DB) OrderWatchAuthorizer {
	return OrderWatchAuthorizer{db: db}
}

// AuthorizeWatch returns an unauthenticated error without a principal and
// an access denied error for everyone else, unknown orders included.
func (a OrderWatchAuthorizer) AuthorizeWatch(ctx context.Context, principal user.Principal, orderID kernel.UUID) error {
	if err := principal.Validate(); err != nil {
		return err
	}
	ok, err := isOrderParticipant(ctx, a.db, principal, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewAccessDeniedError("order belongs to another account")
	}
	return nil
}
