package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/review"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateReviewCommand(t *testing.T) {
	for _, rating := range []int{0, 6} {
		_, err := commands.NewCreateReviewCommand(kernel.NewUUID(), customer(), kernel.NewUUID(), nil, rating, "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}

	cmd, err := commands.NewCreateReviewCommand(kernel.NewUUID(), customer(), kernel.NewUUID(), nil, 5, "  tasty  ")
	require.NoError(t, err)
	assert.Equal(t, "tasty", cmd.Comment())
}

func TestCreateReviewCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newRestaurant(t, kernel.NewUUID())
	burgerID := f.burger.ID
	caller := customer()
	cmd, err := commands.NewCreateReviewCommand(kernel.NewUUID(), caller, f.restaurant.ID(), &burgerID, 4, "good")
	require.NoError(t, err)

	uow := new(MockUoW)
	restaurants := new(MockRestaurantRepository)
	reviews := new(MockReviewRepository)
	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurants).Once(),
		restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once(),
		uow.On("ReviewRepository").Return(reviews).Once(),
		reviews.On("Add", ctx, mock.MatchedBy(func(r *review.Review) bool {
			return r.Rating() == 4 && r.UserID() == caller.UserID && r.MenuItemID() != nil
		})).Return(nil).Once(),
		reviews.On("RatingStats", ctx, f.restaurant.ID()).Return(13, 3, nil).Once(),
		restaurants.On("UpdateRating", ctx, f.restaurant.ID(), 4.3).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateReviewCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	restaurants.AssertExpectations(t)
	reviews.AssertExpectations(t)
}

func TestCreateReviewCommandHandler_Handle_MenuItemOfAnotherRestaurant(t *testing.T) {
	ctx := t.Context()
	f := newRestaurant(t, kernel.NewUUID())
	elsewhere := kernel.NewUUID()
	cmd, err := commands.NewCreateReviewCommand(kernel.NewUUID(), customer(), f.restaurant.ID(), &elsewhere, 4, "")
	require.NoError(t, err)

	uow := new(MockUoW)
	restaurants := new(MockRestaurantRepository)
	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RestaurantRepository").Return(restaurants).Once()
	restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateReviewCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "ReviewRepository")
}

func TestCreateReviewCommandHandler_Handle_OnlyCustomers(t *testing.T) {
	cmd, err := commands.NewCreateReviewCommand(kernel.NewUUID(), agent(), kernel.NewUUID(), nil, 4, "")
	require.NoError(t, err)

	factory := new(MockReviewUoWFactory)
	h := commands.NewCreateReviewCommandHandler(factory)

	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrAccessDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestNewRegisterUserCommand(t *testing.T) {
	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), "Rahim", " Rahim@Example.com ", "secret", user.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "rahim@example.com", cmd.Email())

	_, err = commands.NewRegisterUserCommand(kernel.NewUUID(), "", "not-an-email", "", user.Role("admin"))
	require.Error(t, err)
	for _, field := range []string{"name", "email", "password", "role"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestRegisterUserCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), "Rahim", "rahim@example.com", "secret", user.RoleRestaurantOwner)
	require.NoError(t, err)

	uow := new(MockUoW)
	users := new(MockUserRepository)
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Add", ctx, mock.MatchedBy(func(u *user.User) bool {
			return u.Email() == "rahim@example.com" &&
				u.Role() == user.RoleRestaurantOwner &&
				u.PasswordHash() != "secret" &&
				password.Check(u.PasswordHash(), "secret")
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRegisterUserCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterUserCommandHandler_Handle_DuplicateEmail(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), "Rahim", "rahim@example.com", "secret", user.RoleCustomer)
	require.NoError(t, err)

	uow := new(MockUoW)
	users := new(MockUserRepository)
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Once()
	users.On("Add", ctx, mock.Anything).Return(errs.NewValueIsInvalidError("email")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewRegisterUserCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	assert.True(t, errs.IsValidation(err))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
