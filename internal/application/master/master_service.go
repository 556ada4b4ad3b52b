package master

import (
	"context"
	"errors"

	"github.com/dokon/backoffice/internal/application/txn"
	"github.com/dokon/backoffice/internal/domain/master"
	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/dokon/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatusPending is returned when a car payment was logged but the car's
// sales are not yet covered
const StatusPending = "Pending"

// StatusFlushed is returned when a car payment covered the pending sales
// and the batch was written through
const StatusFlushed = "Flushed"

// Service manages mechanics and their per-car billing cycles. Billing a
// sale to a car decrements stock; the sale only reaches the sale record
// store later, when payments cover the car's running total.
type Service struct {
	scope txn.TransactionScope
	log   *zap.Logger
}

// NewService creates a master service
func NewService(scope txn.TransactionScope, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{scope: scope, log: log}
}

// CreateMaster registers a mechanic
func (s *Service) CreateMaster(ctx context.Context, input CreateMasterInput) (*MasterResponse, error) {
	m, err := master.NewMaster(input.Name, input.Phone)
	if err != nil {
		return nil, err
	}
	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		return repos.Masters().Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	response := ToMasterResponse(m)
	return &response, nil
}

// ListMasters returns masters matching the filter
func (s *Service) ListMasters(ctx context.Context, filter shared.Filter) ([]MasterResponse, int64, error) {
	var (
		responses []MasterResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		masters, err := repos.Masters().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.Masters().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses = ToMasterResponses(masters)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// GetMaster returns one master with their cars
func (s *Service) GetMaster(ctx context.Context, id uuid.UUID) (*MasterResponse, error) {
	var response MasterResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		m, err := repos.Masters().FindByID(ctx, id)
		if err != nil {
			return err
		}
		response = ToMasterResponse(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// AddCar opens a car job under a master
func (s *Service) AddCar(ctx context.Context, masterID uuid.UUID, input AddCarInput) (*CarResponse, error) {
	var response CarResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		m, err := repos.Masters().FindByID(ctx, masterID)
		if err != nil {
			return err
		}
		car, err := m.AddCar(input.Plate, input.Model)
		if err != nil {
			return err
		}
		if err := repos.Masters().Save(ctx, m); err != nil {
			return err
		}
		response = ToCarResponse(car)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// AddCarSale bills a product line to a car and decrements stock
func (s *Service) AddCarSale(ctx context.Context, masterID, carID uuid.UUID, input CarSaleInput) (*CarResponse, error) {
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	currency := valueobject.NormalizeCurrency(input.Currency)
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Currency is required")
	}

	var response CarResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		m, err := repos.Masters().FindByID(ctx, masterID)
		if err != nil {
			return err
		}

		entry, err := repos.Stock().FindByProductID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Product not found in stock")
			}
			return err
		}
		if err := entry.Decrease(input.Quantity); err != nil {
			return err
		}
		if err := repos.Stock().SaveWithLock(ctx, entry); err != nil {
			return err
		}

		line, err := master.NewCarSale(input.ProductID, input.ProductName, input.Quantity, input.SellPrice, input.BuyPrice, currency)
		if err != nil {
			return err
		}
		if err := m.AddSaleToCar(carID, line); err != nil {
			return err
		}
		if err := repos.Masters().Save(ctx, m); err != nil {
			return err
		}

		car, err := m.FindCar(carID)
		if err != nil {
			return err
		}
		response = ToCarResponse(car)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ApplyCarPayment logs a payment against a car and, once cumulative
// payments cover cumulative sales at the current rate, flushes the pending
// batch into the sale record store as cash records and resets the car.
func (s *Service) ApplyCarPayment(ctx context.Context, masterID, carID uuid.UUID, input CarPaymentInput) (*CarPaymentResult, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	currency := valueobject.NormalizeCurrency(input.Currency)
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Currency is required")
	}

	var result *CarPaymentResult
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		globalRate, err := repos.Rates().GetOrCreate(ctx)
		if err != nil {
			return err
		}
		rate := globalRate.Rate

		m, err := repos.Masters().FindByID(ctx, masterID)
		if err != nil {
			return err
		}
		car, err := m.FindCar(carID)
		if err != nil {
			return err
		}
		if err := car.AddPayment(input.Amount, currency); err != nil {
			return err
		}

		totalSales := car.TotalSales(rate)
		totalPaid := car.TotalPayments(rate)

		if !car.IsCovered(rate) {
			m.IncrementVersion()
			if err := repos.Masters().Save(ctx, m); err != nil {
				return err
			}
			result = &CarPaymentResult{
				Status:     StatusPending,
				TotalSales: totalSales,
				TotalPaid:  totalPaid,
			}
			return nil
		}

		flushed := car.Flush()
		records := make([]*sale.SaleRecord, 0, len(flushed))
		for i := range flushed {
			line := &flushed[i]
			record, err := sale.NewSaleRecord(line.ProductID, line.ProductName, line.SellPrice, line.BuyPrice, line.Currency, line.Quantity, line.TotalPrice, line.TotalPrice, sale.PaymentCash, nil)
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		if err := repos.Sales().SaveAll(ctx, records); err != nil {
			return err
		}

		m.IncrementVersion()
		if err := repos.Masters().Save(ctx, m); err != nil {
			return err
		}

		s.log.Info("car billing cycle flushed",
			zap.String("master_id", m.ID.String()),
			zap.String("car_id", car.ID.String()),
			zap.Int("flushed_sales", len(records)))

		result = &CarPaymentResult{
			Status:       StatusFlushed,
			TotalSales:   totalSales,
			TotalPaid:    totalPaid,
			FlushedSales: len(records),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteMaster removes a master and their car jobs
func (s *Service) DeleteMaster(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if _, err := repos.Masters().FindByID(ctx, id); err != nil {
			return err
		}
		return repos.Masters().Delete(ctx, id)
	})
}
