// Package user models accounts and the authenticated principal that every
// protected operation receives.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

type Role string

const (
	RoleCustomer        Role = "customer"
	RoleRestaurantOwner Role = "restaurant_owner"
	RoleDeliveryAgent   Role = "delivery_agent"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleCustomer, RoleRestaurantOwner, RoleDeliveryAgent:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated caller: who it is and in which role.
type Principal struct {
	UserID kernel.UUID
	Role   Role
}

func (p Principal) Validate() error {
	if err := p.UserID.Validate(); err != nil {
		return errs.NewUnauthenticatedError("principal has no user id")
	}
	if _, err := ParseRole(p.Role.String()); err != nil {
		return errs.NewUnauthenticatedError("principal has no valid role")
	}
	return nil
}

// Require fails with an access-denied error unless p holds one of roles.
func (p Principal) Require(roles ...Role) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return errs.NewAccessDeniedError(fmt.Sprintf("role %s is not allowed", p.Role))
}

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	role         Role
	createdAt    time.Time

	isConstructed bool
}

// NewUser validates the account fields. passwordHash must already be hashed.
func NewUser(id kernel.UUID, name, email, passwordHash string, role Role, createdAt time.Time) (*User, error) {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if strings.TrimSpace(name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	normalized, emailErr := NormalizeEmail(email)
	if emailErr != nil {
		err = errors.Join(err, emailErr)
	}
	if passwordHash == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("password"))
	}
	if _, roleErr := ParseRole(role.String()); roleErr != nil {
		err = errors.Join(err, roleErr)
	}
	if err != nil {
		return nil, err
	}

	return &User{
		id:            id,
		name:          strings.TrimSpace(name),
		email:         normalized,
		passwordHash:  passwordHash,
		role:          role,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// NormalizeEmail validates an address and lower-cases it.
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email))
	}
	return strings.ToLower(addr.Address), nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) Principal() Principal {
	return Principal{UserID: u.id, Role: u.role}
}
