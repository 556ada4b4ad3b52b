package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/dokon/backoffice/internal/application/txn"
	"github.com/dokon/backoffice/internal/domain/inventory"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockEntryResponse represents one stock entry
type StockEntryResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ReceiveStockInput adds quantity for a product, creating the entry when
// the product has never been stocked
type ReceiveStockInput struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
}

// Service exposes stock listing and intake. Decrements happen inside the
// settlement, sale and master services, never here.
type Service struct {
	scope txn.TransactionScope
	log   *zap.Logger
}

// NewService creates an inventory service
func NewService(scope txn.TransactionScope, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{scope: scope, log: log}
}

func toStockResponse(entry *inventory.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:          entry.ID.String(),
		ProductID:   entry.ProductID.String(),
		ProductName: entry.ProductName,
		Quantity:    entry.Quantity,
		UpdatedAt:   entry.UpdatedAt,
	}
}

// ListStock returns stock entries matching the filter
func (s *Service) ListStock(ctx context.Context, filter shared.Filter) ([]StockEntryResponse, int64, error) {
	var (
		responses []StockEntryResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		entries, err := repos.Stock().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.Stock().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses = make([]StockEntryResponse, 0, len(entries))
		for i := range entries {
			responses = append(responses, toStockResponse(&entries[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ReceiveStock increases a product's stock, creating the entry on first
// intake
func (s *Service) ReceiveStock(ctx context.Context, input ReceiveStockInput) (*StockEntryResponse, error) {
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	var response StockEntryResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		entry, err := repos.Stock().FindByProductID(ctx, input.ProductID)
		switch {
		case err == nil:
			entry.Increase(input.Quantity)
			if err := repos.Stock().SaveWithLock(ctx, entry); err != nil {
				return err
			}
		case errors.Is(err, shared.ErrNotFound):
			entry, err = inventory.NewStockEntry(input.ProductID, input.ProductName, input.Quantity)
			if err != nil {
				return err
			}
			if err := repos.Stock().Save(ctx, entry); err != nil {
				return err
			}
		default:
			return err
		}
		response = toStockResponse(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
