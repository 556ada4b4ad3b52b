package inventory

import (
	"time"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockEntry tracks the quantity on hand for a single product at the shop.
// It is the aggregate root for stock operations; the product name is a
// denormalized snapshot taken when the entry is created.
type StockEntry struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_entry_product"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// NewStockEntry creates a stock entry for a product
func NewStockEntry(productID uuid.UUID, productName string, quantity decimal.Decimal) (*StockEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	return &StockEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ProductName:       productName,
		Quantity:          quantity,
	}, nil
}

// CanFulfill reports whether the entry holds at least the requested quantity
func (s *StockEntry) CanFulfill(quantity decimal.Decimal) bool {
	return s.Quantity.GreaterThanOrEqual(quantity)
}

// Decrease removes quantity from stock. The check happens before any
// mutation: a decrement past zero leaves the entry untouched and returns an
// insufficient-stock error naming the product.
func (s *StockEntry) Decrease(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !s.CanFulfill(quantity) {
		return shared.NewInsufficientStockError(s.ProductName)
	}
	s.Quantity = s.Quantity.Sub(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Increase adds quantity back to stock (returns, sale deletions)
func (s *StockEntry) Increase(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	s.Quantity = s.Quantity.Add(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
