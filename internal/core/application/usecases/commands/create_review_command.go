package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/review"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateReviewCommandIsNotConstructed = errors.New(
	"CreateReviewCommand must be created via NewCreateReviewCommand constructor",
)

type CreateReviewCommand struct { //nolint:recvcheck //using for validation
	id           kernel.UUID
	principal    user.Principal
	restaurantID kernel.UUID
	menuItemID   *kernel.UUID
	rating       int
	comment      string

	guard guard.ConstructorGuard
}

func NewCreateReviewCommand(
	id kernel.UUID,
	principal user.Principal,
	restaurantID kernel.UUID,
	menuItemID *kernel.UUID,
	rating int,
	comment string,
) (CreateReviewCommand, error) {
	var ratingErr error
	if rating < review.MinRating || rating > review.MaxRating {
		ratingErr = errs.NewValueIsOutOfRangeError("rating", rating, review.MinRating, review.MaxRating)
	}
	if err := errors.Join(id.Validate(), restaurantID.Validate(), ratingErr); err != nil {
		return CreateReviewCommand{}, err
	}

	return CreateReviewCommand{
		id:           id,
		principal:    principal,
		restaurantID: restaurantID,
		menuItemID:   menuItemID,
		rating:       rating,
		comment:      strings.TrimSpace(comment),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateReviewCommand) Validate() error {
	return c.guard.Validate(ErrCreateReviewCommandIsNotConstructed)
}

func (c CreateReviewCommand) ID() kernel.UUID           { return c.id }
func (c CreateReviewCommand) Principal() user.Principal { return c.principal }
func (c CreateReviewCommand) RestaurantID() kernel.UUID { return c.restaurantID }
func (c CreateReviewCommand) MenuItemID() *kernel.UUID  { return c.menuItemID }
func (c CreateReviewCommand) Rating() int               { return c.rating }
func (c CreateReviewCommand) Comment() string           { return c.comment }
