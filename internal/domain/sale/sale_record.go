package sale

import (
	"time"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod classifies how a sale was paid for
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	// PaymentCredit marks sales taken on credit; they never touch the budget
	PaymentCredit PaymentMethod = "credit"
	// PaymentCreditSettled marks records materialized when a debt was paid
	// off through a raw amount adjustment
	PaymentCreditSettled PaymentMethod = "credit_settled"
	PaymentOther         PaymentMethod = "other"
)

// Valid reports whether the payment method is one of the known values
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentCreditSettled, PaymentOther:
		return true
	}
	return false
}

// SaleRecord is one completed transaction line. Records are append-only and
// immutable after creation; the only way one disappears is an explicit
// delete, which also restores stock and reverses the budget. Debtor fields
// are denormalized snapshots taken at write time, so later debtor edits do
// not rewrite history.
type SaleRecord struct {
	shared.BaseEntity
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"type:varchar(255);not null"`
	SellPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BuyPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(8);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPriceSum decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(16);not null;index"`
	DebtorName    *string         `gorm:"type:varchar(255)"`
	DebtorPhone   *string         `gorm:"type:varchar(32)"`
	DebtDueDate   *time.Time
}

// TableName returns the table name for GORM
func (SaleRecord) TableName() string {
	return "sale_records"
}

// DebtorSnapshot carries the debtor identity copied onto a sale record
type DebtorSnapshot struct {
	Name    string
	Phone   string
	DueDate time.Time
}

// NewSaleRecord creates a sale record for one product line
func NewSaleRecord(productID uuid.UUID, productName string, sellPrice, buyPrice decimal.Decimal, currency string, quantity, totalPrice, totalPriceSum decimal.Decimal, method PaymentMethod, snapshot *DebtorSnapshot) (*SaleRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !method.Valid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown payment method")
	}

	record := &SaleRecord{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		ProductName:   productName,
		SellPrice:     sellPrice,
		BuyPrice:      buyPrice,
		Currency:      currency,
		Quantity:      quantity,
		TotalPrice:    totalPrice,
		TotalPriceSum: totalPriceSum,
		PaymentMethod: method,
	}
	if snapshot != nil {
		name := snapshot.Name
		phone := snapshot.Phone
		due := snapshot.DueDate
		record.DebtorName = &name
		record.DebtorPhone = &phone
		record.DebtDueDate = &due
	}
	return record, nil
}

// Profit returns the realized profit of this record
func (s *SaleRecord) Profit() decimal.Decimal {
	return s.SellPrice.Sub(s.BuyPrice).Mul(s.Quantity)
}

// IsCredit reports whether this record was taken on credit
func (s *SaleRecord) IsCredit() bool {
	return s.PaymentMethod == PaymentCredit
}
