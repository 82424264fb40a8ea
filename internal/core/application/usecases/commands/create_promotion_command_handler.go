package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

type CreatePromotionCommandHandler struct {
	uowFactory PromotionUoWFactory
}

func NewCreatePromotionCommandHandler(uowFactory PromotionUoWFactory) CreatePromotionCommandHandler {
	return CreatePromotionCommandHandler{uowFactory: uowFactory}
}

// Handle creates the promotion if the caller owns the restaurant. A code
// already in use is a validation error raised by the repository.
func (h *CreatePromotionCommandHandler) Handle(ctx context.Context, cmd CreatePromotionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	owner := cmd.Principal()
	if err := owner.Require(user.RoleRestaurantOwner); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}
	if !r.IsOwnedBy(owner.UserID) {
		return errs.NewAccessDeniedError("restaurant belongs to another owner")
	}

	p, err := promotion.NewPromotion(cmd.ID(), r.ID(), cmd.Code(), cmd.DiscountPercent(), cmd.ValidUntil(), time.Now())
	if err != nil {
		return err
	}

	if err = uow.PromotionRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
