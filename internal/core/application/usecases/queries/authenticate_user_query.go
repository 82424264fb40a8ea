package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAuthenticateUserQueryIsNotConstructed = errors.New(
	"AuthenticateUserQuery must be created via NewAuthenticateUserQuery constructor",
)

// AuthenticateUserQuery checks login credentials.
type AuthenticateUserQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateUserQuery(email, password string) (AuthenticateUserQuery, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return AuthenticateUserQuery{}, err
	}
	if password == "" {
		return AuthenticateUserQuery{}, errs.NewValueIsRequiredError("password")
	}

	return AuthenticateUserQuery{
		email:    normalized,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q AuthenticateUserQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateUserQueryIsNotConstructed)
}

func (q AuthenticateUserQuery) Email() string {
	return q.email
}

// AuthenticatedUser is what a successful login knows about the caller.
type AuthenticatedUser struct {
	Principal user.Principal
	Name      string
	Email     string
}
