package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreatePromotionCommandIsNotConstructed = errors.New(
	"CreatePromotionCommand must be created via NewCreatePromotionCommand constructor",
)

// CreatePromotionCommand publishes a discount code for a restaurant. The
// percent range and the future validUntil are checked by the promotion
// aggregate when the command is handled.
type CreatePromotionCommand struct { //nolint:recvcheck //using for validation
	id              kernel.UUID
	principal       user.Principal
	restaurantID    kernel.UUID
	code            string
	discountPercent decimal.Decimal
	validUntil      time.Time

	guard guard.ConstructorGuard
}

func NewCreatePromotionCommand(
	id kernel.UUID,
	principal user.Principal,
	restaurantID kernel.UUID,
	code string,
	discountPercent decimal.Decimal,
	validUntil time.Time,
) (CreatePromotionCommand, error) {
	var validUntilErr error
	if validUntil.IsZero() {
		validUntilErr = errs.NewValueIsRequiredError("validUntil")
	}
	if err := errors.Join(id.Validate(), restaurantID.Validate(), validUntilErr); err != nil {
		return CreatePromotionCommand{}, err
	}

	return CreatePromotionCommand{
		id:              id,
		principal:       principal,
		restaurantID:    restaurantID,
		code:            code,
		discountPercent: discountPercent,
		validUntil:      validUntil,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePromotionCommand) Validate() error {
	return c.guard.Validate(ErrCreatePromotionCommandIsNotConstructed)
}

func (c CreatePromotionCommand) ID() kernel.UUID                  { return c.id }
func (c CreatePromotionCommand) Principal() user.Principal        { return c.principal }
func (c CreatePromotionCommand) RestaurantID() kernel.UUID        { return c.restaurantID }
func (c CreatePromotionCommand) Code() string                     { return c.code }
func (c CreatePromotionCommand) DiscountPercent() decimal.Decimal { return c.discountPercent }
func (c CreatePromotionCommand) ValidUntil() time.Time            { return c.validUntil }
