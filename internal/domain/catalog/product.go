package catalog

import (
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The settlement core treats the catalog as
// read-only: products are resolved by ID to recover purchase prices and
// names, never mutated here.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(255);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(name string, purchasePrice decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase price cannot be negative")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PurchasePrice:     purchasePrice,
	}, nil
}
