package debtor

import (
	"context"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for debtor accounts. Save
// persists the whole aggregate: owed lines and payment entries removed from
// the in-memory account must also disappear from storage.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DebtorAccount, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]DebtorAccount, error)
	Save(ctx context.Context, account *DebtorAccount) error
	// SaveWithLock saves only if the stored version matches the one the
	// caller read, so concurrent payments against the same debtor cannot
	// silently overwrite each other
	SaveWithLock(ctx context.Context, account *DebtorAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
