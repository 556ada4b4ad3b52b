package sale

import (
	"time"

	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLineInput is one product line of a sale request
type SaleLineInput struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	SellPrice   decimal.Decimal
	BuyPrice    decimal.Decimal
}

// RecordSaleInput is a request to record a multi-line sale
type RecordSaleInput struct {
	Name          string
	Phone         string
	DueDate       time.Time
	Currency      string
	PaymentMethod sale.PaymentMethod
	Lines         []SaleLineInput
}

// SaleResponse represents a sale record in API responses
type SaleResponse struct {
	ID            string             `json:"id"`
	ProductID     string             `json:"product_id"`
	ProductName   string             `json:"product_name"`
	SellPrice     decimal.Decimal    `json:"sell_price"`
	BuyPrice      decimal.Decimal    `json:"buy_price"`
	Currency      string             `json:"currency"`
	Quantity      decimal.Decimal    `json:"quantity"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
	TotalPriceSum decimal.Decimal    `json:"total_price_sum"`
	PaymentMethod sale.PaymentMethod `json:"payment_method"`
	DebtorName    *string            `json:"debtor_name,omitempty"`
	DebtorPhone   *string            `json:"debtor_phone,omitempty"`
	DebtDueDate   *time.Time         `json:"debt_due_date,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// DebtorCreated summarizes the credit account opened by a credit sale
type DebtorCreated struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	DebtAmount decimal.Decimal `json:"debt_amount"`
}

// RecordSaleResult reports a recorded sale: sale records for settled
// payment methods, the opened debtor account for credit
type RecordSaleResult struct {
	Status string         `json:"status"`
	Sales  []SaleResponse `json:"sales,omitempty"`
	Debtor *DebtorCreated `json:"debtor,omitempty"`
}

// DeleteSaleResult reports a completed sale deletion
type DeleteSaleResult struct {
	Status string `json:"status"`
}

// ProductSold is one product's sold quantity within a monthly bucket
type ProductSold struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	SoldQuantity decimal.Decimal `json:"sold_quantity"`
}

// MonthlySalesBucket is one month of the last-12-months report. Every
// catalog product appears, with zero quantity when nothing sold.
type MonthlySalesBucket struct {
	Date     string        `json:"date"` // YYYY-MM
	Products []ProductSold `json:"products"`
}

// ToSaleResponse maps a sale record to its API representation
func ToSaleResponse(record *sale.SaleRecord) SaleResponse {
	return SaleResponse{
		ID:            record.ID.String(),
		ProductID:     record.ProductID.String(),
		ProductName:   record.ProductName,
		SellPrice:     record.SellPrice,
		BuyPrice:      record.BuyPrice,
		Currency:      record.Currency,
		Quantity:      record.Quantity,
		TotalPrice:    record.TotalPrice,
		TotalPriceSum: record.TotalPriceSum,
		PaymentMethod: record.PaymentMethod,
		DebtorName:    record.DebtorName,
		DebtorPhone:   record.DebtorPhone,
		DebtDueDate:   record.DebtDueDate,
		CreatedAt:     record.CreatedAt,
	}
}

// ToSaleResponses maps a list of sale records
func ToSaleResponses(records []sale.SaleRecord) []SaleResponse {
	responses := make([]SaleResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToSaleResponse(&records[i]))
	}
	return responses
}
