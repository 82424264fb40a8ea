package user_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("should normalise email and expose principal", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), " Rahim ", "Rahim@Example.COM", "$2a$hash", user.RoleCustomer, time.Now())

		require.NoError(t, err)
		assert.Equal(t, "rahim@example.com", u.Email())
		assert.Equal(t, "Rahim", u.Name())
		assert.Equal(t, user.Principal{UserID: u.ID(), Role: user.RoleCustomer}, u.Principal())
	})

	t.Run("should collect every invalid field", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "", "not-an-email", "", "admin", time.Now())

		require.Error(t, err)
		for _, field := range []string{"name", "email", "password", "role"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestPrincipal_Require(t *testing.T) {
	owner := user.Principal{UserID: kernel.NewUUID(), Role: user.RoleRestaurantOwner}

	require.NoError(t, owner.Require(user.RoleRestaurantOwner))
	require.NoError(t, owner.Require(user.RoleCustomer, user.RoleRestaurantOwner))
	assert.ErrorIs(t, owner.Require(user.RoleDeliveryAgent), errs.ErrAccessDenied)

	var anonymous user.Principal
	assert.ErrorIs(t, anonymous.Require(user.RoleCustomer), errs.ErrUnauthenticated)
}

func TestParseRole(t *testing.T) {
	for _, r := range []string{"customer", "restaurant_owner", "delivery_agent"} {
		role, err := user.ParseRole(r)
		require.NoError(t, err)
		assert.Equal(t, r, role.String())
	}
	_, err := user.ParseRole("admin")
	assert.True(t, errs.IsValidation(err))
}
