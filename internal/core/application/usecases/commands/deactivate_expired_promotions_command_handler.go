package commands

import (
	"context"
)

type DeactivateExpiredPromotionsCommandHandler struct {
	uowFactory PromotionUoWFactory
}

func NewDeactivateExpiredPromotionsCommandHandler(uowFactory PromotionUoWFactory) DeactivateExpiredPromotionsCommandHandler {
	return DeactivateExpiredPromotionsCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of promotions deactivated.
func (h *DeactivateExpiredPromotionsCommandHandler) Handle(
	ctx context.Context,
	cmd DeactivateExpiredPromotionsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PromotionRepository()
	expired, err := repo.ListExpiredActive(ctx, cmd.Now())
	if err != nil {
		return 0, err
	}

	deactivated := 0
	for _, p := range expired {
		if !p.Deactivate() {
			continue
		}
		if err = repo.Update(ctx, p); err != nil {
			return 0, err
		}
		deactivated++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deactivated, nil
}
