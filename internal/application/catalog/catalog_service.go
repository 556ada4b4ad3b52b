package catalog

import (
	"context"
	"time"

	"github.com/dokon/backoffice/internal/application/txn"
	"github.com/dokon/backoffice/internal/domain/catalog"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductInput is a request to register a catalog product
type CreateProductInput struct {
	Name          string
	PurchasePrice decimal.Decimal
}

// ProductResponse represents a catalog product
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Service manages the product catalog. The settlement core only reads it;
// writes come through here.
type Service struct {
	scope txn.TransactionScope
	log   *zap.Logger
}

// NewService creates a catalog service
func NewService(scope txn.TransactionScope, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{scope: scope, log: log}
}

func toProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID.String(),
		Name:          product.Name,
		PurchasePrice: product.PurchasePrice,
		CreatedAt:     product.CreatedAt,
	}
}

// CreateProduct registers a product
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductResponse, error) {
	product, err := catalog.NewProduct(input.Name, input.PurchasePrice)
	if err != nil {
		return nil, err
	}
	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	response := toProductResponse(product)
	return &response, nil
}

// ListProducts returns products matching the filter
func (s *Service) ListProducts(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	var (
		responses []ProductResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		products, err := repos.Products().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.Products().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses = make([]ProductResponse, 0, len(products))
		for i := range products {
			responses = append(responses, toProductResponse(&products[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// GetProduct returns one product
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	var response ProductResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		product, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		response = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
