package kernel_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	t.Run("should round to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))
		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.MoneyFromString("-1")
		assert.Error(t, err)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten")
		assert.Error(t, err)
	})

	t.Run("should do arithmetic without float drift", func(t *testing.T) {
		price := kernel.MustMoney("0.10")
		sum := price.Mul(3).Add(kernel.MustMoney("0.20"))
		assert.True(t, sum.Equal(kernel.MustMoney("0.50")))
	})

	t.Run("should compute a percentage", func(t *testing.T) {
		tax := kernel.MustMoney("25.99").Percent(decimal.NewFromInt(8))
		assert.Equal(t, "2.08", tax.String())
	})

	t.Run("should floor subtraction at zero", func(t *testing.T) {
		assert.True(t, kernel.MustMoney("5").Sub(kernel.MustMoney("7")).IsZero())
	})
}
