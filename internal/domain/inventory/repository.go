package inventory

import (
	"context"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// StockEntryRepository defines persistence operations for stock entries
type StockEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockEntry, error)
	// FindByProductID looks an entry up by its product reference, the unique
	// key stock is addressed by everywhere in the core
	FindByProductID(ctx context.Context, productID uuid.UUID) (*StockEntry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockEntry, error)
	Save(ctx context.Context, entry *StockEntry) error
	// SaveWithLock saves the entry only if its stored version matches the
	// version the caller read, protecting concurrent decrements against
	// lost updates
	SaveWithLock(ctx context.Context, entry *StockEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
