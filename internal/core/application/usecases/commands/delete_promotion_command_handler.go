package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

type DeletePromotionCommandHandler struct {
	uowFactory PromotionUoWFactory
}

func NewDeletePromotionCommandHandler(uowFactory PromotionUoWFactory) DeletePromotionCommandHandler {
	return DeletePromotionCommandHandler{uowFactory: uowFactory}
}

func (h *DeletePromotionCommandHandler) Handle(ctx context.Context, cmd DeletePromotionCommand) error {
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

	repo := uow.PromotionRepository()
	p, err := repo.Get(ctx, cmd.ID())
	if err != nil {
		return err
	}

	r, err := uow.RestaurantRepository().Get(ctx, p.RestaurantID())
	if err != nil {
		return err
	}
	if !r.IsOwnedBy(owner.UserID) {
		return errs.NewAccessDeniedError("promotion belongs to another restaurant")
	}

	if err = repo.Delete(ctx, p.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
