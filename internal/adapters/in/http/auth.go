package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/generated/servers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

var ErrTokenSecretIsRequired = errors.New("JWT secret must not be empty")

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens. The subject is the
// user id and the role travels as a custom claim.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrTokenSecretIsRequired
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for p and the moment it expires.
func (i *TokenIssuer) Issue(p user.Principal) (string, time.Time, error) {
	if err := p.Validate(); err != nil {
		return "", time.Time{}, err
	}

	now := i.now()
	expiresAt := now.Add(i.ttl).UTC().Truncate(time.Second)
	claims := &tokenClaims{
		Role: p.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies token and returns the principal it was issued for.
func (i *TokenIssuer) Parse(token string) (user.Principal, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return user.Principal{}, err
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return user.Principal{}, fmt.Errorf("subject: %w", err)
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return user.Principal{}, err
	}
	return user.Principal{UserID: userID, Role: role}, nil
}

// Authenticate resolves the bearer token, if any, into the request
// principal. Requests without an Authorization header pass through with no
// principal and are rejected by the operations that need one; a header
// that is present but invalid is rejected here.
func Authenticate(tokens *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: "invalid authorization header",
				})
			}

			principal, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: "invalid or expired token",
				})
			}

			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

// principalFrom returns the authenticated caller. Without one the zero
// Principal is returned, which every protected operation rejects as
// unauthenticated.
func principalFrom(c echo.Context) user.Principal {
	p, _ := c.Get(principalContextKey).(user.Principal)
	return p
}
