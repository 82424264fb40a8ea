package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAddPaymentMethodCommandIsNotConstructed = errors.New(
	"AddPaymentMethodCommand must be created via NewAddPaymentMethodCommand constructor",
)

// AddPaymentMethodCommand saves a card tokenized by the payment gateway.
// Only the token travels through the service; card data never does.
type AddPaymentMethodCommand struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	principal user.Principal
	token     string

	guard guard.ConstructorGuard
}

func NewAddPaymentMethodCommand(id kernel.UUID, principal user.Principal, token string) (AddPaymentMethodCommand, error) {
	cmd := AddPaymentMethodCommand{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}

	var tokenErr error
	if token = strings.TrimSpace(token); token == "" {
		tokenErr = errs.NewValueIsRequiredError("paymentMethodToken")
	}
	if err := errors.Join(id.Validate(), tokenErr); err != nil {
		return AddPaymentMethodCommand{}, err
	}
	cmd.id = id
	cmd.token = token

	return cmd, nil
}

func (c AddPaymentMethodCommand) Validate() error {
	return c.guard.Validate(ErrAddPaymentMethodCommandIsNotConstructed)
}

func (c AddPaymentMethodCommand) ID() kernel.UUID           { return c.id }
func (c AddPaymentMethodCommand) Principal() user.Principal { return c.principal }
func (c AddPaymentMethodCommand) Token() string             { return c.token }
