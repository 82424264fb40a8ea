package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/pkg/guard"
)

var ErrDeactivateExpiredPromotionsCommandIsNotConstructed = errors.New(
	"DeactivateExpiredPromotionsCommand must be created via NewDeactivateExpiredPromotionsCommand constructor",
)

// DeactivateExpiredPromotionsCommand turns off every active promotion whose
// validUntil is not after now.
type DeactivateExpiredPromotionsCommand struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewDeactivateExpiredPromotionsCommand(now time.Time) DeactivateExpiredPromotionsCommand {
	return DeactivateExpiredPromotionsCommand{now: now, guard: guard.NewConstructorGuard()}
}

func (c DeactivateExpiredPromotionsCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateExpiredPromotionsCommandIsNotConstructed)
}

func (c DeactivateExpiredPromotionsCommand) Now() time.Time {
	return c.now
}
