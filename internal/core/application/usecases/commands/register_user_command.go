package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	id       kernel.UUID
	name     string
	email    string
	password string
	role     user.Role

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand checks the request shape. The password is kept in
// plain text only until the handler hashes it.
func NewRegisterUserCommand(id kernel.UUID, name, email, password string, role user.Role) (RegisterUserCommand, error) {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if strings.TrimSpace(name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	normalized, emailErr := user.NormalizeEmail(email)
	if emailErr != nil {
		err = errors.Join(err, emailErr)
	}
	if password == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("password"))
	}
	if _, roleErr := user.ParseRole(role.String()); roleErr != nil {
		err = errors.Join(err, roleErr)
	}
	if err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		id:       id,
		name:     name,
		email:    normalized,
		password: password,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) ID() kernel.UUID  { return c.id }
func (c RegisterUserCommand) Name() string     { return c.name }
func (c RegisterUserCommand) Email() string    { return c.email }
func (c RegisterUserCommand) Password() string { return c.password }
func (c RegisterUserCommand) Role() user.Role  { return c.role }
