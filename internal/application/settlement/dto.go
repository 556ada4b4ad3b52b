package settlement

import (
	"time"

	"github.com/dokon/backoffice/internal/domain/debtor"
	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the outcome of a settlement attempt
type PaymentStatus string

const (
	StatusClosed        PaymentStatus = "closed"
	StatusPartiallyPaid PaymentStatus = "partially_paid"
	StatusReturned      PaymentStatus = "returned"
)

// ApplyPaymentInput carries a payment event into the settlement engine
type ApplyPaymentInput struct {
	DebtorID      uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	Rate          decimal.Decimal
	PaymentMethod sale.PaymentMethod
}

// PaymentResult reports what a payment did to the debt
type PaymentResult struct {
	Status    PaymentStatus   `json:"status"`
	Remaining decimal.Decimal `json:"remaining"`
}

// ReturnResult reports a completed product return
type ReturnResult struct {
	Status PaymentStatus `json:"status"`
}

// DebtorPatch is a raw administrative override: any non-nil field overwrites
// the stored value verbatim, debt amount and owed lines included. No
// invariants are re-checked on this path.
type DebtorPatch struct {
	Name       *string
	Phone      *string
	DueDate    *time.Time
	Currency   *string
	DebtAmount *decimal.Decimal
	Products   *[]OwedLineInput
}

// OwedLineInput is one owed line supplied through the edit path
type OwedLineInput struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductQuantity decimal.Decimal `json:"product_quantity"`
	SellPrice       decimal.Decimal `json:"sell_price"`
	BuyPrice        decimal.Decimal `json:"buy_price"`
}

// OwedLineResponse represents an owed line in API responses
type OwedLineResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductQuantity decimal.Decimal `json:"product_quantity"`
	SellPrice       decimal.Decimal `json:"sell_price"`
	BuyPrice        decimal.Decimal `json:"buy_price"`
}

// PaymentEntryResponse represents a logged payment in API responses
type PaymentEntryResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Date     time.Time       `json:"date"`
}

// DebtorResponse represents a debtor account in API responses
type DebtorResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Phone      string                 `json:"phone"`
	DueDate    time.Time              `json:"due_date"`
	Currency   string                 `json:"currency"`
	DebtAmount decimal.Decimal        `json:"debt_amount"`
	Products   []OwedLineResponse     `json:"products"`
	PaymentLog []PaymentEntryResponse `json:"payment_log"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// ToDebtorResponse maps a debtor aggregate to its API representation
func ToDebtorResponse(d *debtor.DebtorAccount) DebtorResponse {
	resp := DebtorResponse{
		ID:         d.ID.String(),
		Name:       d.Name,
		Phone:      d.Phone,
		DueDate:    d.DueDate,
		Currency:   d.Currency,
		DebtAmount: d.DebtAmount,
		Products:   make([]OwedLineResponse, 0, len(d.Products)),
		PaymentLog: make([]PaymentEntryResponse, 0, len(d.PaymentLog)),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	for i := range d.Products {
		line := &d.Products[i]
		resp.Products = append(resp.Products, OwedLineResponse{
			ProductID:       line.ProductID.String(),
			ProductName:     line.ProductName,
			ProductQuantity: line.ProductQuantity,
			SellPrice:       line.SellPrice,
			BuyPrice:        line.BuyPrice,
		})
	}
	for i := range d.PaymentLog {
		entry := &d.PaymentLog[i]
		resp.PaymentLog = append(resp.PaymentLog, PaymentEntryResponse{
			Amount:   entry.Amount,
			Currency: entry.Currency,
			Date:     entry.Date,
		})
	}
	return resp
}

// ToDebtorResponses maps a list of debtor aggregates
func ToDebtorResponses(accounts []debtor.DebtorAccount) []DebtorResponse {
	responses := make([]DebtorResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToDebtorResponse(&accounts[i]))
	}
	return responses
}
