package debtor

import (
	"time"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwedLine is one product/quantity/price entry within a debtor's outstanding
// balance. Product name and prices are snapshots taken when the credit sale
// was recorded; later catalog edits do not reach back into open debts.
type OwedLine struct {
	shared.BaseEntity
	DebtorID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName     string          `gorm:"type:varchar(255);not null"`
	ProductQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SellPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"` // USD
	BuyPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OwedLine) TableName() string {
	return "debtor_owed_lines"
}

// LineTotal returns sell price times quantity for this line
func (l *OwedLine) LineTotal() decimal.Decimal {
	return l.SellPrice.Mul(l.ProductQuantity)
}

// NewOwedLine creates an owed line with snapshot pricing
func NewOwedLine(productID uuid.UUID, productName string, quantity, sellPrice, buyPrice decimal.Decimal) (OwedLine, error) {
	if productID == uuid.Nil {
		return OwedLine{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return OwedLine{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if sellPrice.IsNegative() || buyPrice.IsNegative() {
		return OwedLine{}, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	return OwedLine{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		ProductName:     productName,
		ProductQuantity: quantity,
		SellPrice:       sellPrice,
		BuyPrice:        buyPrice,
	}, nil
}

// PaymentEntry records a payment in the units it was entered in. Amounts are
// deliberately not normalized so the log reflects what the customer handed
// over.
type PaymentEntry struct {
	shared.BaseEntity
	DebtorID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency string          `gorm:"type:varchar(8);not null"`
	Date     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentEntry) TableName() string {
	return "debtor_payment_entries"
}

// DebtorAccount is an open credit account: the products taken on credit, the
// cumulative debt (always kept in USD regardless of the origin currency) and
// the payment history. It is the aggregate root; owed lines and payment
// entries are owned children and not independently addressable.
type DebtorAccount struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"type:varchar(255);not null"`
	Phone      string          `gorm:"type:varchar(32)"`
	DueDate    time.Time       `gorm:"not null"`
	Currency   string          `gorm:"type:varchar(8);not null"`
	DebtAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"` // USD
	Products   []OwedLine      `gorm:"foreignKey:DebtorID;references:ID"`
	PaymentLog []PaymentEntry  `gorm:"foreignKey:DebtorID;references:ID"`
}

// TableName returns the table name for GORM
func (DebtorAccount) TableName() string {
	return "debtor_accounts"
}

// NewDebtorAccount opens a credit account for the given owed lines. The debt
// amount is the sum of the line totals.
func NewDebtorAccount(name, phone string, dueDate time.Time, currency string, lines []OwedLine) (*DebtorAccount, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Debtor name is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A credit account needs at least one owed line")
	}

	d := &DebtorAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		DueDate:           dueDate,
		Currency:          currency,
		DebtAmount:        decimal.Zero,
		Products:          make([]OwedLine, 0, len(lines)),
		PaymentLog:        make([]PaymentEntry, 0),
	}
	for _, line := range lines {
		line.DebtorID = d.ID
		d.Products = append(d.Products, line)
		d.DebtAmount = d.DebtAmount.Add(line.LineTotal())
	}
	return d, nil
}

// OutstandingLineTotal sums the owed line totals. After partial payments this
// exceeds DebtAmount: partial payments reduce the balance without touching
// line quantities, so the two drift apart until the account is closed.
func (d *DebtorAccount) OutstandingLineTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range d.Products {
		total = total.Add(d.Products[i].LineTotal())
	}
	return total
}

// IsSettled reports whether the debt is fully covered
func (d *DebtorAccount) IsSettled() bool {
	return d.DebtAmount.LessThanOrEqual(decimal.Zero)
}

// RecordPartialPayment reduces the balance by the USD value and logs the
// payment in its origin units. Owed lines are left untouched.
func (d *DebtorAccount) RecordPartialPayment(amount decimal.Decimal, currency string, amountUSD decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	d.DebtAmount = d.DebtAmount.Sub(amountUSD)
	d.PaymentLog = append(d.PaymentLog, PaymentEntry{
		BaseEntity: shared.NewBaseEntity(),
		DebtorID:   d.ID,
		Amount:     amount,
		Currency:   currency,
		Date:       time.Now(),
	})
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// ReduceDebt subtracts a raw USD amount from the balance and logs it
func (d *DebtorAccount) ReduceDebt(amountUSD decimal.Decimal) error {
	return d.RecordPartialPayment(amountUSD, "usd", amountUSD)
}

// Close settles the account in place: the balance is zeroed and the owed
// lines and payment log are discarded. The record itself is kept so the
// debtor keeps its identity for audit.
func (d *DebtorAccount) Close() {
	d.DebtAmount = decimal.Zero
	d.Products = nil
	d.PaymentLog = nil
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// ReturnLine takes quantity of a product back from the debtor: the owed
// line's quantity drops, the debt drops by quantity times the line's sell
// price, and a line drained to zero (or below) is removed entirely.
// It returns the USD amount the debt was reduced by.
func (d *DebtorAccount) ReturnLine(productID uuid.UUID, quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	idx := -1
	for i := range d.Products {
		if d.Products[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return decimal.Zero, shared.NewDomainError("NOT_FOUND", "Product not found among owed lines")
	}

	line := &d.Products[idx]
	line.ProductQuantity = line.ProductQuantity.Sub(quantity)
	refund := line.SellPrice.Mul(quantity)
	d.DebtAmount = d.DebtAmount.Sub(refund)

	if line.ProductQuantity.LessThanOrEqual(decimal.Zero) {
		d.Products = append(d.Products[:idx], d.Products[idx+1:]...)
	}

	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return refund, nil
}
