package finance

import (
	"time"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BudgetKey is the well-known key of the single budget record. The budget is
// a singleton: repositories upsert on this key instead of letting budget
// rows multiply.
const BudgetKey = "shop"

// Budget is the running total of realized profit. Completed non-credit sales
// add (sell - buy) * quantity; deleting a sale reverses the same amount.
type Budget struct {
	shared.BaseAggregateRoot
	Key         string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	TotalBudget decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Budget) TableName() string {
	return "budgets"
}

// NewBudget creates the budget record at zero
func NewBudget() *Budget {
	return &Budget{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Key:               BudgetKey,
		TotalBudget:       decimal.Zero,
	}
}

// Add accumulates realized profit
func (b *Budget) Add(profit decimal.Decimal) {
	b.TotalBudget = b.TotalBudget.Add(profit)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Subtract reverses previously accumulated profit (sale deletion)
func (b *Budget) Subtract(profit decimal.Decimal) {
	b.TotalBudget = b.TotalBudget.Sub(profit)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
