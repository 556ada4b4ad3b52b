package valueobject

import (
	"strings"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Currency codes used across the ledger. USD is the normalization target for
// debtor balances; everything else is converted through the floating rate.
const (
	CurrencyUSD = "usd"
	CurrencyUZS = "uzs"
)

// NormalizeCurrency lowercases a currency code for comparison
func NormalizeCurrency(currency string) string {
	return strings.ToLower(strings.TrimSpace(currency))
}

// IsUSD reports whether the currency code denotes US dollars
func IsUSD(currency string) bool {
	return NormalizeCurrency(currency) == CurrencyUSD
}

// ToUSD converts an amount in the given currency to USD using the floating
// exchange rate (local units per dollar). USD amounts pass through unchanged.
// A zero or negative rate is rejected before any division happens.
func ToUSD(amount decimal.Decimal, currency string, rate decimal.Decimal) (decimal.Decimal, error) {
	if IsUSD(currency) {
		return amount, nil
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.ErrInvalidRate
	}
	return amount.Div(rate), nil
}

// FromUSD re-expresses a USD amount in the given currency. This is the
// inverse of ToUSD and is used when a sale total has to be stated in the
// payment's origin currency.
func FromUSD(amountUSD decimal.Decimal, currency string, rate decimal.Decimal) decimal.Decimal {
	if IsUSD(currency) {
		return amountUSD
	}
	return amountUSD.Mul(rate)
}
