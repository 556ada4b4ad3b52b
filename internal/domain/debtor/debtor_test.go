package debtor

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLine(t *testing.T, qty, sell, buy int64) OwedLine {
	t.Helper()
	line, err := NewOwedLine(uuid.New(), "Oil filter", decimal.NewFromInt(qty), decimal.NewFromInt(sell), decimal.NewFromInt(buy))
	require.NoError(t, err)
	return line
}

func newTestAccount(t *testing.T, lines ...OwedLine) *DebtorAccount {
	t.Helper()
	d, err := NewDebtorAccount("Karim", "+998901234567", time.Now().AddDate(0, 1, 0), "uzs", lines)
	require.NoError(t, err)
	return d
}

func TestNewDebtorAccount(t *testing.T) {
	t.Run("computes debt from line totals", func(t *testing.T) {
		d := newTestAccount(t, newTestLine(t, 2, 50, 30), newTestLine(t, 1, 20, 10))

		assert.True(t, decimal.NewFromInt(120).Equal(d.DebtAmount))
		assert.Len(t, d.Products, 2)
		assert.Empty(t, d.PaymentLog)
		for _, line := range d.Products {
			assert.Equal(t, d.ID, line.DebtorID)
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := NewDebtorAccount("", "", time.Now(), "usd", []OwedLine{newTestLine(t, 1, 10, 5)})
		assert.Error(t, err)
	})

	t.Run("requires at least one line", func(t *testing.T) {
		_, err := NewDebtorAccount("Karim", "", time.Now(), "usd", nil)
		assert.Error(t, err)
	})
}

func TestDebtorAccount_RecordPartialPayment(t *testing.T) {
	d := newTestAccount(t, newTestLine(t, 2, 50, 30))

	err := d.RecordPartialPayment(decimal.NewFromInt(504000), "uzs", decimal.NewFromInt(40))

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(d.DebtAmount))
	require.Len(t, d.PaymentLog, 1)
	assert.True(t, decimal.NewFromInt(504000).Equal(d.PaymentLog[0].Amount))
	assert.Equal(t, "uzs", d.PaymentLog[0].Currency)
	// lines stay as they are; only the balance moves
	assert.Len(t, d.Products, 1)
	assert.True(t, decimal.NewFromInt(2).Equal(d.Products[0].ProductQuantity))
}

func TestDebtorAccount_OutstandingLineTotal(t *testing.T) {
	d := newTestAccount(t, newTestLine(t, 2, 50, 30))

	require.NoError(t, d.RecordPartialPayment(decimal.NewFromInt(40), "usd", decimal.NewFromInt(40)))

	// partial payments make the balance drift below the line total
	assert.True(t, decimal.NewFromInt(100).Equal(d.OutstandingLineTotal()))
	assert.True(t, decimal.NewFromInt(60).Equal(d.DebtAmount))
}

func TestDebtorAccount_Close(t *testing.T) {
	d := newTestAccount(t, newTestLine(t, 2, 50, 30))
	require.NoError(t, d.RecordPartialPayment(decimal.NewFromInt(10), "usd", decimal.NewFromInt(10)))

	d.Close()

	assert.True(t, d.DebtAmount.IsZero())
	assert.Empty(t, d.Products)
	assert.Empty(t, d.PaymentLog)
	assert.True(t, d.IsSettled())
}

func TestDebtorAccount_ReduceDebt(t *testing.T) {
	d := newTestAccount(t, newTestLine(t, 2, 50, 30))

	require.NoError(t, d.ReduceDebt(decimal.NewFromInt(120)))

	assert.True(t, d.IsSettled())
	require.Len(t, d.PaymentLog, 1)
	assert.Equal(t, "usd", d.PaymentLog[0].Currency)
}

func TestDebtorAccount_ReturnLine(t *testing.T) {
	t.Run("reduces line quantity and debt", func(t *testing.T) {
		line := newTestLine(t, 2, 50, 30)
		d := newTestAccount(t, line)

		refund, err := d.ReturnLine(line.ProductID, decimal.NewFromInt(1))

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(refund))
		assert.True(t, decimal.NewFromInt(50).Equal(d.DebtAmount))
		require.Len(t, d.Products, 1)
		assert.True(t, decimal.NewFromInt(1).Equal(d.Products[0].ProductQuantity))
	})

	t.Run("removes line drained to zero", func(t *testing.T) {
		line := newTestLine(t, 2, 50, 30)
		d := newTestAccount(t, line)

		_, err := d.ReturnLine(line.ProductID, decimal.NewFromInt(2))

		require.NoError(t, err)
		assert.Empty(t, d.Products)
		assert.True(t, d.DebtAmount.IsZero())
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		d := newTestAccount(t, newTestLine(t, 2, 50, 30))

		_, err := d.ReturnLine(uuid.New(), decimal.NewFromInt(1))

		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		line := newTestLine(t, 2, 50, 30)
		d := newTestAccount(t, line)

		_, err := d.ReturnLine(line.ProductID, decimal.Zero)

		assert.Error(t, err)
	})
}
