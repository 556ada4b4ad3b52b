package finance

import (
	"time"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RateKey is the well-known key of the single exchange-rate record
const RateKey = "usd"

// DefaultRate is used until a rate has been configured
var DefaultRate = decimal.NewFromInt(1)

// ExchangeRate holds the current floating rate between the shop's local
// currency and USD (local units per dollar). Like the budget it is a
// singleton keyed record.
type ExchangeRate struct {
	shared.BaseAggregateRoot
	Key  string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Rate decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}

// NewExchangeRate creates the rate record with the default rate
func NewExchangeRate() *ExchangeRate {
	return &ExchangeRate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Key:               RateKey,
		Rate:              DefaultRate,
	}
}

// SetRate updates the rate; non-positive rates are rejected
func (r *ExchangeRate) SetRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidRate
	}
	r.Rate = rate
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
