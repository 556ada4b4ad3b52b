package persistence

import (
	"context"
	"errors"

	"github.com/dokon/backoffice/internal/domain/finance"
	"gorm.io/gorm"
)

// GormBudgetRepository implements finance.BudgetRepository using GORM. The
// budget is a keyed singleton: the first access creates the row at zero.
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// GetOrCreate returns the budget record, creating it on first access
func (r *GormBudgetRepository) GetOrCreate(ctx context.Context) (*finance.Budget, error) {
	var budget finance.Budget
	err := r.db.WithContext(ctx).First(&budget, "key = ?", finance.BudgetKey).Error
	if err == nil {
		return &budget, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := finance.NewBudget()
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// Save persists the budget
func (r *GormBudgetRepository) Save(ctx context.Context, budget *finance.Budget) error {
	return r.db.WithContext(ctx).Save(budget).Error
}

// GormExchangeRateRepository implements finance.ExchangeRateRepository
// using GORM, with the same keyed-singleton rule as the budget
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// GetOrCreate returns the exchange-rate record, creating it with the
// default rate on first access
func (r *GormExchangeRateRepository) GetOrCreate(ctx context.Context) (*finance.ExchangeRate, error) {
	var rate finance.ExchangeRate
	err := r.db.WithContext(ctx).First(&rate, "key = ?", finance.RateKey).Error
	if err == nil {
		return &rate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := finance.NewExchangeRate()
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// Save persists the exchange rate
func (r *GormExchangeRateRepository) Save(ctx context.Context, rate *finance.ExchangeRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

var (
	_ finance.BudgetRepository       = (*GormBudgetRepository)(nil)
	_ finance.ExchangeRateRepository = (*GormExchangeRateRepository)(nil)
)
