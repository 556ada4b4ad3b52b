package finance

import (
	"context"
	"testing"

	"github.com/dokon/backoffice/internal/application/txn"
	"github.com/dokon/backoffice/internal/domain/finance"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBudgetRepository is a mock implementation of finance.BudgetRepository
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) GetOrCreate(ctx context.Context) (*finance.Budget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Save(ctx context.Context, budget *finance.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

// MockRateRepository is a mock implementation of finance.ExchangeRateRepository
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) GetOrCreate(ctx context.Context) (*finance.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExchangeRate), args.Error(1)
}

func (m *MockRateRepository) Save(ctx context.Context, rate *finance.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func newFinanceService(budgetRepo *MockBudgetRepository, rateRepo *MockRateRepository) *Service {
	scope := &txn.NoOpTransactionScope{BudgetRepo: budgetRepo, RateRepo: rateRepo}
	return NewService(scope, nil)
}

func TestGetBudget(t *testing.T) {
	budget := finance.NewBudget()
	budget.Add(decimal.NewFromInt(250))

	budgetRepo := new(MockBudgetRepository)
	budgetRepo.On("GetOrCreate", mock.Anything).Return(budget, nil)

	service := newFinanceService(budgetRepo, new(MockRateRepository))
	response, err := service.GetBudget(context.Background())

	assert.NoError(t, err)
	assert.True(t, response.TotalBudget.Equal(decimal.NewFromInt(250)))
	budgetRepo.AssertExpectations(t)
}

func TestSetRate(t *testing.T) {
	rate := finance.NewExchangeRate()

	rateRepo := new(MockRateRepository)
	rateRepo.On("GetOrCreate", mock.Anything).Return(rate, nil)
	rateRepo.On("Save", mock.Anything, rate).Return(nil)

	service := newFinanceService(new(MockBudgetRepository), rateRepo)
	response, err := service.SetRate(context.Background(), decimal.NewFromInt(11000))

	assert.NoError(t, err)
	assert.True(t, response.Rate.Equal(decimal.NewFromInt(11000)))
	rateRepo.AssertExpectations(t)
}

func TestSetRate_RejectsNonPositive(t *testing.T) {
	rate := finance.NewExchangeRate()

	rateRepo := new(MockRateRepository)
	rateRepo.On("GetOrCreate", mock.Anything).Return(rate, nil)

	service := newFinanceService(new(MockBudgetRepository), rateRepo)
	_, err := service.SetRate(context.Background(), decimal.Zero)

	assert.ErrorIs(t, err, shared.ErrInvalidRate)
	rateRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
