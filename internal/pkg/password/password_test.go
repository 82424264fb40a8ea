package password_test

import (
	"strings"
	"testing"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, password.Check(hash, "s3cret-pass"))
	assert.False(t, password.Check(hash, "wrong"))
}

func TestHash_Invalid(t *testing.T) {
	_, err := password.Hash("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = password.Hash(strings.Repeat("a", password.MaxLength+1))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
