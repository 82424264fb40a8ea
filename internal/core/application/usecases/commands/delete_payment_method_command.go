package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrDeletePaymentMethodCommandIsNotConstructed = errors.New(
	"DeletePaymentMethodCommand must be created via NewDeletePaymentMethodCommand constructor",
)

type DeletePaymentMethodCommand struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	principal user.Principal

	guard guard.ConstructorGuard
}

func NewDeletePaymentMethodCommand(id kernel.UUID, principal user.Principal) (DeletePaymentMethodCommand, error) {
	if err := id.Validate(); err != nil {
		return DeletePaymentMethodCommand{}, err
	}
	return DeletePaymentMethodCommand{id: id, principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (c DeletePaymentMethodCommand) Validate() error {
	return c.guard.Validate(ErrDeletePaymentMethodCommandIsNotConstructed)
}

func (c DeletePaymentMethodCommand) ID() kernel.UUID           { return c.id }
func (c DeletePaymentMethodCommand) Principal() user.Principal { return c.principal }
