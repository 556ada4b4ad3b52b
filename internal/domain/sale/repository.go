package sale

import (
	"context"
	"time"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyProductQuantity is one row of the per-product monthly sales
// aggregate used by the last-12-months report
type MonthlyProductQuantity struct {
	Year        int
	Month       int
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
}

// Repository defines persistence operations for sale records
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleRecord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SaleRecord, error)
	// FindByDateRange returns records created in [from, to)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]SaleRecord, error)
	Save(ctx context.Context, record *SaleRecord) error
	SaveAll(ctx context.Context, records []*SaleRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// SumQuantityByProductAndMonth aggregates sold quantities per product and
	// calendar month for records created at or after from
	SumQuantityByProductAndMonth(ctx context.Context, from time.Time) ([]MonthlyProductQuantity, error)
}
