package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/password"
)

type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory}
}

// Handle hashes the password and stores the account. A registered email is
// a validation error raised by the repository.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hash, err := password.Hash(cmd.Password())
	if err != nil {
		return err
	}

	u, err := user.NewUser(cmd.ID(), cmd.Name(), cmd.Email(), hash, cmd.Role(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
