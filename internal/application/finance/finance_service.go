package finance

import (
	"context"
	"time"

	"github.com/dokon/backoffice/internal/application/txn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BudgetResponse represents the shop budget
type BudgetResponse struct {
	TotalBudget decimal.Decimal `json:"total_budget"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RateResponse represents the current exchange rate
type RateResponse struct {
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Service exposes the budget and exchange-rate singletons
type Service struct {
	scope txn.TransactionScope
	log   *zap.Logger
}

// NewService creates a finance service
func NewService(scope txn.TransactionScope, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{scope: scope, log: log}
}

// GetBudget returns the current budget, creating the record at zero on
// first access
func (s *Service) GetBudget(ctx context.Context) (*BudgetResponse, error) {
	var response BudgetResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		budget, err := repos.Budget().GetOrCreate(ctx)
		if err != nil {
			return err
		}
		response = BudgetResponse{TotalBudget: budget.TotalBudget, UpdatedAt: budget.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetRate returns the current exchange rate
func (s *Service) GetRate(ctx context.Context) (*RateResponse, error) {
	var response RateResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		rate, err := repos.Rates().GetOrCreate(ctx)
		if err != nil {
			return err
		}
		response = RateResponse{Rate: rate.Rate, UpdatedAt: rate.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// SetRate updates the exchange rate
func (s *Service) SetRate(ctx context.Context, newRate decimal.Decimal) (*RateResponse, error) {
	var response RateResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		rate, err := repos.Rates().GetOrCreate(ctx)
		if err != nil {
			return err
		}
		if err := rate.SetRate(newRate); err != nil {
			return err
		}
		if err := repos.Rates().Save(ctx, rate); err != nil {
			return err
		}
		response = RateResponse{Rate: rate.Rate, UpdatedAt: rate.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("exchange rate updated", zap.String("rate", newRate.String()))
	return &response, nil
}
