package master

import (
	"context"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for masters. Save persists the
// whole aggregate; car sales and payments cleared by a flush must also be
// removed from storage.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Master, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Master, error)
	Save(ctx context.Context, master *Master) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
