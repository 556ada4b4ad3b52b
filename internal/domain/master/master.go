package master

import (
	"time"

	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/dokon/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CarSale is a pending line item billed to a car. It stays on the car until
// cumulative payments cover cumulative sales, at which point the whole batch
// flushes into the sale record store.
type CarSale struct {
	shared.BaseEntity
	CarID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	SellPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BuyPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency    string          `gorm:"type:varchar(8);not null"`
}

// TableName returns the table name for GORM
func (CarSale) TableName() string {
	return "master_car_sales"
}

// NewCarSale creates a pending car sale line
func NewCarSale(productID uuid.UUID, productName string, quantity, sellPrice, buyPrice decimal.Decimal, currency string) (CarSale, error) {
	if productID == uuid.Nil {
		return CarSale{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return CarSale{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return CarSale{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductName: productName,
		SellPrice:   sellPrice,
		BuyPrice:    buyPrice,
		Quantity:    quantity,
		TotalPrice:  sellPrice.Mul(quantity),
		Currency:    currency,
	}, nil
}

// CarPayment is one payment logged against a car
type CarPayment struct {
	shared.BaseEntity
	CarID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency string          `gorm:"type:varchar(8);not null"`
	Date     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CarPayment) TableName() string {
	return "master_car_payments"
}

// Car is one job a master is working on. It accumulates billed sales and
// payments until the payments cover the sales.
type Car struct {
	shared.BaseEntity
	MasterID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	Plate      string       `gorm:"type:varchar(32);not null"`
	Model      string       `gorm:"type:varchar(64)"`
	Sales      []CarSale    `gorm:"foreignKey:CarID;references:ID"`
	PaymentLog []CarPayment `gorm:"foreignKey:CarID;references:ID"`
}

// TableName returns the table name for GORM
func (Car) TableName() string {
	return "master_cars"
}

// toLocal converts an amount to the shop's local currency basis so sales and
// payments in mixed currencies compare on equal footing
func toLocal(amount decimal.Decimal, currency string, rate decimal.Decimal) decimal.Decimal {
	if valueobject.IsUSD(currency) {
		return amount.Mul(rate)
	}
	return amount
}

// TotalSales sums pending sale totals in local currency at the given rate
func (c *Car) TotalSales(rate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for i := range c.Sales {
		total = total.Add(toLocal(c.Sales[i].TotalPrice, c.Sales[i].Currency, rate))
	}
	return total
}

// TotalPayments sums logged payments in local currency at the given rate
func (c *Car) TotalPayments(rate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for i := range c.PaymentLog {
		total = total.Add(toLocal(c.PaymentLog[i].Amount, c.PaymentLog[i].Currency, rate))
	}
	return total
}

// IsCovered reports whether payments meet or exceed sales. Both sides are
// rounded to the nearest whole unit first so small conversion remainders do
// not keep a fully paid car open.
func (c *Car) IsCovered(rate decimal.Decimal) bool {
	sales := c.TotalSales(rate).Round(0)
	payments := c.TotalPayments(rate).Round(0)
	return payments.GreaterThanOrEqual(sales) && sales.GreaterThan(decimal.Zero)
}

// AddPayment logs a payment against the car
func (c *Car) AddPayment(amount decimal.Decimal, currency string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	c.PaymentLog = append(c.PaymentLog, CarPayment{
		BaseEntity: shared.NewBaseEntity(),
		CarID:      c.ID,
		Amount:     amount,
		Currency:   currency,
		Date:       time.Now(),
	})
	return nil
}

// Flush hands back the pending sales and clears both the sales and the
// payment log, resetting the car for its next billing cycle
func (c *Car) Flush() []CarSale {
	flushed := c.Sales
	c.Sales = nil
	c.PaymentLog = nil
	return flushed
}

// Master is a mechanic with zero or more cars in progress. It is the
// aggregate root; cars and their billing children are persisted with it.
type Master struct {
	shared.BaseAggregateRoot
	Name  string `gorm:"type:varchar(255);not null"`
	Phone string `gorm:"type:varchar(32)"`
	Cars  []Car  `gorm:"foreignKey:MasterID;references:ID"`
}

// TableName returns the table name for GORM
func (Master) TableName() string {
	return "masters"
}

// NewMaster creates a master with no cars
func NewMaster(name, phone string) (*Master, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Master name is required")
	}
	return &Master{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Cars:              make([]Car, 0),
	}, nil
}

// AddCar registers a car job with the master and returns it
func (m *Master) AddCar(plate, model string) (*Car, error) {
	if plate == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Car plate is required")
	}
	car := Car{
		BaseEntity: shared.NewBaseEntity(),
		MasterID:   m.ID,
		Plate:      plate,
		Model:      model,
		Sales:      make([]CarSale, 0),
		PaymentLog: make([]CarPayment, 0),
	}
	m.Cars = append(m.Cars, car)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return &m.Cars[len(m.Cars)-1], nil
}

// FindCar returns the car with the given ID
func (m *Master) FindCar(carID uuid.UUID) (*Car, error) {
	for i := range m.Cars {
		if m.Cars[i].ID == carID {
			return &m.Cars[i], nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Car not found")
}

// AddSaleToCar bills a sale line to one of the master's cars
func (m *Master) AddSaleToCar(carID uuid.UUID, line CarSale) error {
	car, err := m.FindCar(carID)
	if err != nil {
		return err
	}
	line.CarID = car.ID
	car.Sales = append(car.Sales, line)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}
