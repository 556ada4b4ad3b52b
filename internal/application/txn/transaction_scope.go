package txn

import (
	"context"

	"github.com/dokon/backoffice/internal/domain/catalog"
	"github.com/dokon/backoffice/internal/domain/debtor"
	"github.com/dokon/backoffice/internal/domain/finance"
	"github.com/dokon/backoffice/internal/domain/inventory"
	"github.com/dokon/backoffice/internal/domain/master"
	"github.com/dokon/backoffice/internal/domain/sale"
)

// TransactionScope runs a function against a transactional set of
// repositories. Settlements, sale recordings and flushes touch several
// aggregates (stock entries, debtor, sale records, budget) and must commit
// or roll back as one unit: a stock check failing on the third line of five
// must leave the first two lines' stock untouched.
type TransactionScope interface {
	// Execute runs fn within a storage transaction. If fn returns an error
	// the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to all core repositories sharing one
// underlying transaction.
type Repositories interface {
	Products() catalog.ProductRepository
	Stock() inventory.StockEntryRepository
	Debtors() debtor.Repository
	Sales() sale.Repository
	Budget() finance.BudgetRepository
	Rates() finance.ExchangeRateRepository
	Masters() master.Repository
}

// NoOpTransactionScope runs the function without a real transaction. It
// exists for tests, which hand in mock repositories.
type NoOpTransactionScope struct {
	ProductRepo catalog.ProductRepository
	StockRepo   inventory.StockEntryRepository
	DebtorRepo  debtor.Repository
	SaleRepo    sale.Repository
	BudgetRepo  finance.BudgetRepository
	RateRepo    finance.ExchangeRateRepository
	MasterRepo  master.Repository
}

// Execute runs fn directly against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.ProductRepo }

// Stock returns the stock entry repository
func (s *NoOpTransactionScope) Stock() inventory.StockEntryRepository { return s.StockRepo }

// Debtors returns the debtor repository
func (s *NoOpTransactionScope) Debtors() debtor.Repository { return s.DebtorRepo }

// Sales returns the sale record repository
func (s *NoOpTransactionScope) Sales() sale.Repository { return s.SaleRepo }

// Budget returns the budget repository
func (s *NoOpTransactionScope) Budget() finance.BudgetRepository { return s.BudgetRepo }

// Rates returns the exchange rate repository
func (s *NoOpTransactionScope) Rates() finance.ExchangeRateRepository { return s.RateRepo }

// Masters returns the master repository
func (s *NoOpTransactionScope) Masters() master.Repository { return s.MasterRepo }

var (
	_ TransactionScope = (*NoOpTransactionScope)(nil)
	_ Repositories     = (*NoOpTransactionScope)(nil)
)
