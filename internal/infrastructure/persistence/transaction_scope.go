package persistence

import (
	"context"

	"github.com/dokon/backoffice/internal/application/txn"
	"github.com/dokon/backoffice/internal/domain/catalog"
	"github.com/dokon/backoffice/internal/domain/debtor"
	"github.com/dokon/backoffice/internal/domain/finance"
	"github.com/dokon/backoffice/internal/domain/inventory"
	"github.com/dokon/backoffice/internal/domain/master"
	"github.com/dokon/backoffice/internal/domain/sale"
	"gorm.io/gorm"
)

// GormTransactionScope implements txn.TransactionScope using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. All
// repository operations performed through the provided repositories share
// the same transaction and commit or roll back together.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormRepositories{tx: tx}
		return fn(repos)
	})
}

// gormRepositories provides repositories bound to a single transaction
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormRepositories) Stock() inventory.StockEntryRepository {
	return NewGormStockRepository(r.tx)
}

func (r *gormRepositories) Debtors() debtor.Repository {
	return NewGormDebtorRepository(r.tx)
}

func (r *gormRepositories) Sales() sale.Repository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormRepositories) Budget() finance.BudgetRepository {
	return NewGormBudgetRepository(r.tx)
}

func (r *gormRepositories) Rates() finance.ExchangeRateRepository {
	return NewGormExchangeRateRepository(r.tx)
}

func (r *gormRepositories) Masters() master.Repository {
	return NewGormMasterRepository(r.tx)
}

var (
	_ txn.TransactionScope = (*GormTransactionScope)(nil)
	_ txn.Repositories     = (*gormRepositories)(nil)
)
