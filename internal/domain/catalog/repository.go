package catalog

import (
	"context"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for catalog products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
