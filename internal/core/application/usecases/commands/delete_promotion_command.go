package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrDeletePromotionCommandIsNotConstructed = errors.New(
	"DeletePromotionCommand must be created via NewDeletePromotionCommand constructor",
)

type DeletePromotionCommand struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	principal user.Principal

	guard guard.ConstructorGuard
}

func NewDeletePromotionCommand(id kernel.UUID, principal user.Principal) (DeletePromotionCommand, error) {
	if err := id.Validate(); err != nil {
		return DeletePromotionCommand{}, err
	}
	return DeletePromotionCommand{id: id, principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (c DeletePromotionCommand) Validate() error {
	return c.guard.Validate(ErrDeletePromotionCommandIsNotConstructed)
}

func (c DeletePromotionCommand) ID() kernel.UUID           { return c.id }
func (c DeletePromotionCommand) Principal() user.Principal { return c.principal }
