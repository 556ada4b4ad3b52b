package sale

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dokon/backoffice/internal/application/txn"
	"github.com/dokon/backoffice/internal/domain/debtor"
	"github.com/dokon/backoffice/internal/domain/inventory"
	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/dokon/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatusRecorded is returned when a sale has been written
const StatusRecorded = "Recorded"

// StatusDeleted is returned when a sale record has been removed
const StatusDeleted = "Deleted"

// Service records and deletes sales and produces sales reports. Recording
// decrements stock and credits the budget with realized profit; deletion
// reverses both. Credit sales open a debtor account instead of producing
// sale records.
type Service struct {
	scope txn.TransactionScope
	log   *zap.Logger
}

// NewService creates a sale service
func NewService(scope txn.TransactionScope, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{scope: scope, log: log}
}

// RecordSale records a multi-line sale. All lines are validated against
// stock before anything is written, so a shortage on the last line leaves
// the first lines untouched.
func (s *Service) RecordSale(ctx context.Context, input RecordSaleInput) (*RecordSaleResult, error) {
	if input.Name == "" || input.Phone == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name and phone are required")
	}
	if len(input.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one sale line is required")
	}
	currency := valueobject.NormalizeCurrency(input.Currency)
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Currency is required")
	}
	method := input.PaymentMethod
	if method == "" {
		method = sale.PaymentCash
	}
	if !method.Valid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown payment method")
	}
	for _, line := range input.Lines {
		if line.ProductID == uuid.Nil || line.ProductName == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Every sale line needs a product")
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
		}
		if line.SellPrice.LessThanOrEqual(decimal.Zero) || line.BuyPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Prices must be positive")
		}
	}
	if method == sale.PaymentCredit && input.DueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Credit sales need a due date")
	}

	var result *RecordSaleResult
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		// First pass checks every line against stock without mutating.
		// Quantities are accumulated per product so two lines of the same
		// product cannot each pass individually.
		entries := make(map[uuid.UUID]*inventory.StockEntry)
		required := make(map[uuid.UUID]decimal.Decimal)
		for _, line := range input.Lines {
			entry, ok := entries[line.ProductID]
			if !ok {
				found, err := repos.Stock().FindByProductID(ctx, line.ProductID)
				if err != nil {
					if errors.Is(err, shared.ErrNotFound) {
						return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found in stock", line.ProductName))
					}
					return err
				}
				entry = found
				entries[line.ProductID] = entry
			}
			need := required[line.ProductID].Add(line.Quantity)
			required[line.ProductID] = need
			if !entry.CanFulfill(need) {
				return shared.NewInsufficientStockError(entry.ProductName)
			}
		}

		// Second pass commits the decrements
		for productID, need := range required {
			entry := entries[productID]
			if err := entry.Decrease(need); err != nil {
				return err
			}
			if err := repos.Stock().SaveWithLock(ctx, entry); err != nil {
				return err
			}
		}

		if method == sale.PaymentCredit {
			lines := make([]debtor.OwedLine, 0, len(input.Lines))
			for _, line := range input.Lines {
				owed, err := debtor.NewOwedLine(line.ProductID, line.ProductName, line.Quantity, line.SellPrice, line.BuyPrice)
				if err != nil {
					return err
				}
				lines = append(lines, owed)
			}
			account, err := debtor.NewDebtorAccount(input.Name, input.Phone, input.DueDate, currency, lines)
			if err != nil {
				return err
			}
			if err := repos.Debtors().Save(ctx, account); err != nil {
				return err
			}
			s.log.Info("credit sale opened debtor account",
				zap.String("debtor_id", account.ID.String()),
				zap.String("debt_amount", account.DebtAmount.String()))
			result = &RecordSaleResult{
				Status: StatusRecorded,
				Debtor: &DebtorCreated{
					ID:         account.ID.String(),
					Name:       account.Name,
					DebtAmount: account.DebtAmount,
				},
			}
			return nil
		}

		records := make([]*sale.SaleRecord, 0, len(input.Lines))
		profit := decimal.Zero
		for _, line := range input.Lines {
			total := line.SellPrice.Mul(line.Quantity)
			record, err := sale.NewSaleRecord(line.ProductID, line.ProductName, line.SellPrice, line.BuyPrice, currency, line.Quantity, total, total, method, nil)
			if err != nil {
				return err
			}
			records = append(records, record)
			profit = profit.Add(record.Profit())
		}
		if err := repos.Sales().SaveAll(ctx, records); err != nil {
			return err
		}

		budget, err := repos.Budget().GetOrCreate(ctx)
		if err != nil {
			return err
		}
		budget.Add(profit)
		if err := repos.Budget().Save(ctx, budget); err != nil {
			return err
		}

		saved := make([]sale.SaleRecord, 0, len(records))
		for _, record := range records {
			saved = append(saved, *record)
		}
		result = &RecordSaleResult{Status: StatusRecorded, Sales: ToSaleResponses(saved)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSale removes a sale record, restores its quantity to stock and
// subtracts its profit from the budget. A record whose stock entry has
// since disappeared still gets deleted; the restore is skipped and logged.
func (s *Service) DeleteSale(ctx context.Context, id uuid.UUID) (*DeleteSaleResult, error) {
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		record, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}

		entry, err := repos.Stock().FindByProductID(ctx, record.ProductID)
		switch {
		case err == nil:
			if err := entry.Increase(record.Quantity); err != nil {
				return err
			}
			if err := repos.Stock().SaveWithLock(ctx, entry); err != nil {
				return err
			}
		case errors.Is(err, shared.ErrNotFound):
			s.log.Warn("stock entry missing, skipping restore",
				zap.String("sale_id", record.ID.String()),
				zap.String("product_id", record.ProductID.String()))
		default:
			return err
		}

		budget, err := repos.Budget().GetOrCreate(ctx)
		if err != nil {
			return err
		}
		budget.Subtract(record.Profit())
		if err := repos.Budget().Save(ctx, budget); err != nil {
			return err
		}

		return repos.Sales().Delete(ctx, record.ID)
	})
	if err != nil {
		return nil, err
	}
	return &DeleteSaleResult{Status: StatusDeleted}, nil
}

// ListSales returns sale records matching the filter
func (s *Service) ListSales(ctx context.Context, filter shared.Filter) ([]SaleResponse, int64, error) {
	var (
		responses []SaleResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		records, err := repos.Sales().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.Sales().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses = ToSaleResponses(records)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ReportBucket names a calendar window for sales reports
type ReportBucket string

const (
	BucketDaily   ReportBucket = "daily"
	BucketWeekly  ReportBucket = "weekly"
	BucketMonthly ReportBucket = "monthly"
	BucketYearly  ReportBucket = "yearly"
)

// rangeFor returns the [from, to) window of the bucket containing now.
// Weeks start on Sunday.
func rangeFor(bucket ReportBucket, now time.Time) (time.Time, time.Time, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch bucket {
	case BucketDaily:
		return day, day.AddDate(0, 0, 1), nil
	case BucketWeekly:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 7), nil
	case BucketMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	case BucketYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0), nil
	}
	return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_INPUT", "Unknown report bucket")
}

// SalesForBucket returns the sale records of the current day, week, month
// or year
func (s *Service) SalesForBucket(ctx context.Context, bucket ReportBucket) ([]SaleResponse, error) {
	from, to, err := rangeFor(bucket, time.Now())
	if err != nil {
		return nil, err
	}
	var responses []SaleResponse
	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		records, err := repos.Sales().FindByDateRange(ctx, from, to)
		if err != nil {
			return err
		}
		responses = ToSaleResponses(records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// LastTwelveMonths aggregates sold quantities per product for the trailing
// twelve calendar months, newest first. Every catalog product appears in
// every month, with zero quantity when nothing sold.
func (s *Service) LastTwelveMonths(ctx context.Context) ([]MonthlySalesBucket, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	var buckets []MonthlySalesBucket
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		products, err := repos.Products().FindAll(ctx, shared.Filter{})
		if err != nil {
			return err
		}
		rows, err := repos.Sales().SumQuantityByProductAndMonth(ctx, from)
		if err != nil {
			return err
		}

		sold := make(map[string]decimal.Decimal, len(rows))
		for _, row := range rows {
			key := fmt.Sprintf("%04d-%02d/%s", row.Year, row.Month, row.ProductID)
			sold[key] = sold[key].Add(row.Quantity)
		}

		buckets = make([]MonthlySalesBucket, 0, 12)
		for i := 0; i < 12; i++ {
			month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
			bucket := MonthlySalesBucket{
				Date:     month.Format("2006-01"),
				Products: make([]ProductSold, 0, len(products)),
			}
			for j := range products {
				product := &products[j]
				key := fmt.Sprintf("%04d-%02d/%s", month.Year(), int(month.Month()), product.ID)
				bucket.Products = append(bucket.Products, ProductSold{
					ProductID:    product.ID.String(),
					ProductName:  product.Name,
					SoldQuantity: sold[key],
				})
			}
			buckets = append(buckets, bucket)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buckets, nil
}
