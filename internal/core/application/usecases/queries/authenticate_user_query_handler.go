package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentials = "invalid email or password"

type AuthenticateUserQueryHandler struct {
	db *gorm.DB
}

func NewAuthenticateUserQueryHandler(db *gorm.DB) AuthenticateUserQueryHandler {
	return AuthenticateUserQueryHandler{db: db}
}

// Handle returns an unauthenticated error for an unknown email and for a
// wrong password alike.
func (h AuthenticateUserQueryHandler) Handle(
	ctx context.Context,
	query AuthenticateUserQuery,
) (AuthenticatedUser, error) {
	if err := query.Validate(); err != nil {
		return AuthenticatedUser{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, password_hash, role
		FROM users
		WHERE email = ?
	`, query.email).Rows()
	if err != nil {
		return AuthenticatedUser{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return AuthenticatedUser{}, err
		}
		return AuthenticatedUser{}, errs.NewUnauthenticatedError(invalidCredentials)
	}

	var (
		id                  uuid.UUID
		name, hash, rawRole string
	)
	if err = rows.Scan(&id, &name, &hash, &rawRole); err != nil {
		return AuthenticatedUser{}, err
	}

	if !password.Check(hash, query.password) {
		return AuthenticatedUser{}, errs.NewUnauthenticatedError(invalidCredentials)
	}

	userID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return AuthenticatedUser{}, err
	}
	role, err := user.ParseRole(rawRole)
	if err != nil {
		return AuthenticatedUser{}, err
	}

	return AuthenticatedUser{
		Principal: user.Principal{UserID: userID, Role: role},
		Name:      name,
		Email:     query.email,
	}, nil
}
