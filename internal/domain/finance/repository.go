package finance

import "context"

// BudgetRepository persists the budget singleton. GetOrCreate implements the
// upsert-on-missing rule: the first access creates the record at zero.
type BudgetRepository interface {
	GetOrCreate(ctx context.Context) (*Budget, error)
	Save(ctx context.Context, budget *Budget) error
}

// ExchangeRateRepository persists the exchange-rate singleton
type ExchangeRateRepository interface {
	GetOrCreate(ctx context.Context) (*ExchangeRate, error)
	Save(ctx context.Context, rate *ExchangeRate) error
}
