package master

import (
	"time"

	"github.com/dokon/backoffice/internal/domain/master"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMasterInput is a request to register a mechanic
type CreateMasterInput struct {
	Name  string
	Phone string
}

// AddCarInput is a request to open a car job under a master
type AddCarInput struct {
	Plate string
	Model string
}

// CarSaleInput is one product line billed to a car
type CarSaleInput struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	SellPrice   decimal.Decimal
	BuyPrice    decimal.Decimal
	Currency    string
}

// CarPaymentInput is a payment logged against a car
type CarPaymentInput struct {
	Amount   decimal.Decimal
	Currency string
}

// CarSaleResponse represents a pending car sale line
type CarSaleResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SellPrice   decimal.Decimal `json:"sell_price"`
	BuyPrice    decimal.Decimal `json:"buy_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Currency    string          `json:"currency"`
}

// CarPaymentResponse represents one logged car payment
type CarPaymentResponse struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Date     time.Time       `json:"date"`
}

// CarResponse represents a car job with its billing state
type CarResponse struct {
	ID         string               `json:"id"`
	Plate      string               `json:"plate"`
	Model      string               `json:"model,omitempty"`
	Sales      []CarSaleResponse    `json:"sales"`
	PaymentLog []CarPaymentResponse `json:"payment_log"`
}

// MasterResponse represents a master with their car jobs
type MasterResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone,omitempty"`
	Cars      []CarResponse `json:"cars"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CarPaymentResult reports the outcome of a car payment. Flushed means
// cumulative payments covered cumulative sales and the pending batch was
// written to the sale record store.
type CarPaymentResult struct {
	Status       string          `json:"status"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	FlushedSales int             `json:"flushed_sales,omitempty"`
}

// ToCarResponse maps a car to its API representation
func ToCarResponse(car *master.Car) CarResponse {
	response := CarResponse{
		ID:         car.ID.String(),
		Plate:      car.Plate,
		Model:      car.Model,
		Sales:      make([]CarSaleResponse, 0, len(car.Sales)),
		PaymentLog: make([]CarPaymentResponse, 0, len(car.PaymentLog)),
	}
	for i := range car.Sales {
		line := &car.Sales[i]
		response.Sales = append(response.Sales, CarSaleResponse{
			ID:          line.ID.String(),
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			SellPrice:   line.SellPrice,
			BuyPrice:    line.BuyPrice,
			Quantity:    line.Quantity,
			TotalPrice:  line.TotalPrice,
			Currency:    line.Currency,
		})
	}
	for i := range car.PaymentLog {
		entry := &car.PaymentLog[i]
		response.PaymentLog = append(response.PaymentLog, CarPaymentResponse{
			ID:       entry.ID.String(),
			Amount:   entry.Amount,
			Currency: entry.Currency,
			Date:     entry.Date,
		})
	}
	return response
}

// ToMasterResponse maps a master to its API representation
func ToMasterResponse(m *master.Master) MasterResponse {
	response := MasterResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Phone:     m.Phone,
		Cars:      make([]CarResponse, 0, len(m.Cars)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for i := range m.Cars {
		response.Cars = append(response.Cars, ToCarResponse(&m.Cars[i]))
	}
	return response
}

// ToMasterResponses maps a list of masters
func ToMasterResponses(masters []master.Master) []MasterResponse {
	responses := make([]MasterResponse, 0, len(masters))
	for i := range masters {
		responses = append(responses, ToMasterResponse(&masters[i]))
	}
	return responses
}
