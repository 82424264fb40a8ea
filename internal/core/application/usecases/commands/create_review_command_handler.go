package commands

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/review"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// CreateReviewCommandHandler stores a review and refreshes the restaurant's
// average rating in the same transaction.
type CreateReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
}

func NewCreateReviewCommandHandler(uowFactory ReviewUoWFactory) CreateReviewCommandHandler {
	return CreateReviewCommandHandler{uowFactory: uowFactory}
}

func (h *CreateReviewCommandHandler) Handle(ctx context.Context, cmd CreateReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	author := cmd.Principal()
	if err := author.Require(user.RoleCustomer); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurants := uow.RestaurantRepository()
	r, err := restaurants.Get(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}
	if id := cmd.MenuItemID(); id != nil && !onMenu(r, *id) {
		return errs.NewValueIsInvalidErrorWithCause("menuItemId",
			fmt.Errorf("%s is not on the menu of restaurant %s", id, r.ID()))
	}

	rv, err := review.NewReview(cmd.ID(), author.UserID, r.ID(), cmd.MenuItemID(), cmd.Rating(), cmd.Comment(), time.Now())
	if err != nil {
		return err
	}

	reviews := uow.ReviewRepository()
	if err = reviews.Add(ctx, rv); err != nil {
		return err
	}

	sum, count, err := reviews.RatingStats(ctx, r.ID())
	if err != nil {
		return err
	}
	if err = restaurants.UpdateRating(ctx, r.ID(), restaurant.AverageRating(sum, count)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func onMenu(r *restaurant.Restaurant, menuItemID kernel.UUID) bool {
	for _, item := range r.Menu() {
		if item.ID.IsEqual(menuItemID) {
			return true
		}
	}
	return false
}
