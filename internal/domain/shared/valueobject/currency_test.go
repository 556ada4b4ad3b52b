package valueobject

import (
	"testing"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUSD(t *testing.T) {
	t.Run("usd passes through unchanged", func(t *testing.T) {
		amount := decimal.NewFromInt(150)

		got, err := ToUSD(amount, "usd", decimal.Zero)

		require.NoError(t, err)
		assert.True(t, amount.Equal(got))
	})

	t.Run("usd comparison is case insensitive", func(t *testing.T) {
		amount := decimal.NewFromInt(42)

		got, err := ToUSD(amount, "USD", decimal.Zero)

		require.NoError(t, err)
		assert.True(t, amount.Equal(got))
	})

	t.Run("divides by rate for other currencies", func(t *testing.T) {
		amount := decimal.NewFromInt(126000)
		rate := decimal.NewFromInt(12600)

		got, err := ToUSD(amount, "uzs", rate)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10).Equal(got))
	})

	t.Run("rejects zero rate", func(t *testing.T) {
		_, err := ToUSD(decimal.NewFromInt(100), "uzs", decimal.Zero)

		assert.ErrorIs(t, err, shared.ErrInvalidRate)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := ToUSD(decimal.NewFromInt(100), "uzs", decimal.NewFromInt(-5))

		assert.ErrorIs(t, err, shared.ErrInvalidRate)
	})
}

func TestFromUSD(t *testing.T) {
	t.Run("usd passes through unchanged", func(t *testing.T) {
		amount := decimal.NewFromInt(75)

		got := FromUSD(amount, "usd", decimal.NewFromInt(12600))

		assert.True(t, amount.Equal(got))
	})

	t.Run("multiplies by rate for other currencies", func(t *testing.T) {
		got := FromUSD(decimal.NewFromInt(10), "uzs", decimal.NewFromInt(12600))

		assert.True(t, decimal.NewFromInt(126000).Equal(got))
	})
}

func TestRoundTrip(t *testing.T) {
	rate := decimal.NewFromFloat(12543.21)
	amount := decimal.NewFromFloat(987654.32)

	usd, err := ToUSD(amount, "uzs", rate)
	require.NoError(t, err)
	back := FromUSD(usd, "uzs", rate)

	assert.True(t, amount.Sub(back).Abs().LessThan(decimal.NewFromFloat(0.0001)))
}
