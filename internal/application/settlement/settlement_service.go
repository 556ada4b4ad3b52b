package settlement

import (
	"context"
	"errors"

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

// Service is the settlement engine. It reconciles payments against debtor
// balances, converts currencies, transitions owed inventory into recorded
// sales and keeps stock counts, debtor balances and the budget consistent.
// Every multi-aggregate operation runs inside a TransactionScope and
// validates all lines before mutating any of them.
type Service struct {
	scope txn.TransactionScope
	log   *zap.Logger
}

// NewService creates a settlement service
func NewService(scope txn.TransactionScope, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{scope: scope, log: log}
}

// ApplyPayment applies a payment toward a debtor's balance. A payment that
// covers the balance settles the account: all owed lines are checked against
// stock, stock is decremented, one sale record is written per line and the
// account is closed in place. A smaller payment just reduces the balance and
// logs the payment.
func (s *Service) ApplyPayment(ctx context.Context, in ApplyPaymentInput) (*PaymentResult, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	currency := valueobject.NormalizeCurrency(in.Currency)
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Currency is required")
	}
	method := in.PaymentMethod
	if method == "" {
		method = sale.PaymentCash
	}
	if !method.Valid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown payment method")
	}

	amountUSD, err := valueobject.ToUSD(in.Amount, currency, in.Rate)
	if err != nil {
		return nil, err
	}

	var result *PaymentResult
	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		account, err := repos.Debtors().FindByID(ctx, in.DebtorID)
		if err != nil {
			return err
		}

		remaining := account.DebtAmount.Sub(amountUSD)
		if remaining.GreaterThan(decimal.Zero) {
			if err := account.RecordPartialPayment(in.Amount, currency, amountUSD); err != nil {
				return err
			}
			if err := repos.Debtors().SaveWithLock(ctx, account); err != nil {
				return err
			}
			result = &PaymentResult{Status: StatusPartiallyPaid, Remaining: remaining}
			return nil
		}

		if err := s.settleInFull(ctx, repos, account, currency, in.Rate, method); err != nil {
			return err
		}
		result = &PaymentResult{Status: StatusClosed, Remaining: decimal.Zero}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settledLine pairs an owed line with its resolved stock entry and the
// purchase price recovered from the catalog
type settledLine struct {
	line     *debtor.OwedLine
	stock    *inventory.StockEntry
	buyPrice decimal.Decimal
}

// settleInFull converts every owed line into a sale record, decrements stock
// and closes the account in place. All lines are validated against stock
// before any entry is touched, so a short line aborts with nothing mutated.
func (s *Service) settleInFull(ctx context.Context, repos txn.Repositories, account *debtor.DebtorAccount, currency string, rate decimal.Decimal, method sale.PaymentMethod) error {
	lines := make([]settledLine, 0, len(account.Products))
	stockByProduct := make(map[uuid.UUID]*inventory.StockEntry)
	required := make(map[uuid.UUID]decimal.Decimal)

	for i := range account.Products {
		line := &account.Products[i]

		product, err := repos.Products().FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// the product vanished from the catalog; the line cannot be
				// settled but must not block the rest of the debt
				s.log.Warn("Owed line skipped: product missing from catalog",
					zap.String("debtor_id", account.ID.String()),
					zap.String("product_id", line.ProductID.String()),
					zap.String("product_name", line.ProductName),
				)
				continue
			}
			return err
		}

		entry, ok := stockByProduct[line.ProductID]
		if !ok {
			entry, err = repos.Stock().FindByProductID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewInsufficientStockError(line.ProductName)
				}
				return err
			}
			stockByProduct[line.ProductID] = entry
			required[line.ProductID] = decimal.Zero
		}

		required[line.ProductID] = required[line.ProductID].Add(line.ProductQuantity)
		if !entry.CanFulfill(required[line.ProductID]) {
			return shared.NewInsufficientStockError(line.ProductName)
		}

		lines = append(lines, settledLine{line: line, stock: entry, buyPrice: product.PurchasePrice})
	}

	// every line checked out; now commit
	for productID, entry := range stockByProduct {
		if err := entry.Decrease(required[productID]); err != nil {
			return err
		}
		if err := repos.Stock().SaveWithLock(ctx, entry); err != nil {
			return err
		}
	}

	snapshot := &sale.DebtorSnapshot{Name: account.Name, Phone: account.Phone, DueDate: account.DueDate}
	records := make([]*sale.SaleRecord, 0, len(lines))
	for _, sl := range lines {
		totalPrice := sl.line.LineTotal()
		totalPriceSum := valueobject.FromUSD(totalPrice, currency, rate)
		record, err := sale.NewSaleRecord(
			sl.line.ProductID, sl.line.ProductName,
			sl.line.SellPrice, sl.buyPrice, valueobject.CurrencyUSD,
			sl.line.ProductQuantity, totalPrice, totalPriceSum,
			method, snapshot,
		)
		if err != nil {
			return err
		}
		records = append(records, record)
	}
	if err := repos.Sales().SaveAll(ctx, records); err != nil {
		return err
	}

	account.Close()
	return repos.Debtors().SaveWithLock(ctx, account)
}

// ReduceDebt subtracts a raw USD amount from the balance, independent of any
// currency conversion. When the balance drops to zero or below, the owed
// lines are materialized as credit-settled sale records and the account is
// closed in place. Stock is not touched on this path.
func (s *Service) ReduceDebt(ctx context.Context, debtorID uuid.UUID, amount decimal.Decimal) (*PaymentResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}

	var result *PaymentResult
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		account, err := repos.Debtors().FindByID(ctx, debtorID)
		if err != nil {
			return err
		}

		if err := account.ReduceDebt(amount); err != nil {
			return err
		}

		if !account.IsSettled() {
			if err := repos.Debtors().SaveWithLock(ctx, account); err != nil {
				return err
			}
			result = &PaymentResult{Status: StatusPartiallyPaid, Remaining: account.DebtAmount}
			return nil
		}

		snapshot := &sale.DebtorSnapshot{Name: account.Name, Phone: account.Phone, DueDate: account.DueDate}
		records := make([]*sale.SaleRecord, 0, len(account.Products))
		for i := range account.Products {
			line := &account.Products[i]
			totalPrice := line.LineTotal()
			record, err := sale.NewSaleRecord(
				line.ProductID, line.ProductName,
				line.SellPrice, line.BuyPrice, valueobject.CurrencyUSD,
				line.ProductQuantity, totalPrice, totalPrice,
				sale.PaymentCreditSettled, snapshot,
			)
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		if err := repos.Sales().SaveAll(ctx, records); err != nil {
			return err
		}

		account.Close()
		if err := repos.Debtors().SaveWithLock(ctx, account); err != nil {
			return err
		}
		result = &PaymentResult{Status: StatusClosed, Remaining: decimal.Zero}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReturnProduct takes quantity of a product back from a debtor: stock goes
// up, the owed line and the balance go down. The paired mutations run in one
// transaction; a debtor save failing after the stock write surfaces as a
// partial failure instead of being swallowed.
func (s *Service) ReturnProduct(ctx context.Context, debtorID, productID uuid.UUID, quantity decimal.Decimal) (*ReturnResult, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		account, err := repos.Debtors().FindByID(ctx, debtorID)
		if err != nil {
			return err
		}
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}

		if _, err := account.ReturnLine(productID, quantity); err != nil {
			return err
		}

		entry, err := repos.Stock().FindByProductID(ctx, productID)
		switch {
		case err == nil:
			if err := entry.Increase(quantity); err != nil {
				return err
			}
			if err := repos.Stock().SaveWithLock(ctx, entry); err != nil {
				return err
			}
		case errors.Is(err, shared.ErrNotFound):
			entry, err = inventory.NewStockEntry(productID, product.Name, quantity)
			if err != nil {
				return err
			}
			if err := repos.Stock().Save(ctx, entry); err != nil {
				return err
			}
		default:
			return err
		}

		if err := repos.Debtors().SaveWithLock(ctx, account); err != nil {
			return shared.NewPartialFailureError("debtor save", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ReturnResult{Status: StatusReturned}, nil
}

// EditDebtor is the raw administrative override: non-nil patch fields
// overwrite the stored record verbatim, with no invariant checks. Callers
// get exactly what they wrote.
func (s *Service) EditDebtor(ctx context.Context, debtorID uuid.UUID, patch DebtorPatch) (*DebtorResponse, error) {
	var response *DebtorResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		account, err := repos.Debtors().FindByID(ctx, debtorID)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			account.Name = *patch.Name
		}
		if patch.Phone != nil {
			account.Phone = *patch.Phone
		}
		if patch.DueDate != nil {
			account.DueDate = *patch.DueDate
		}
		if patch.Currency != nil {
			account.Currency = valueobject.NormalizeCurrency(*patch.Currency)
		}
		if patch.DebtAmount != nil {
			account.DebtAmount = *patch.DebtAmount
		}
		if patch.Products != nil {
			lines := make([]debtor.OwedLine, 0, len(*patch.Products))
			for _, in := range *patch.Products {
				line := debtor.OwedLine{
					BaseEntity:      shared.NewBaseEntity(),
					DebtorID:        account.ID,
					ProductID:       in.ProductID,
					ProductName:     in.ProductName,
					ProductQuantity: in.ProductQuantity,
					SellPrice:       in.SellPrice,
					BuyPrice:        in.BuyPrice,
				}
				lines = append(lines, line)
			}
			account.Products = lines
		}
		account.IncrementVersion()

		if err := repos.Debtors().Save(ctx, account); err != nil {
			return err
		}
		resp := ToDebtorResponse(account)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListDebtors returns open debtor accounts
func (s *Service) ListDebtors(ctx context.Context, filter shared.Filter) ([]DebtorResponse, int64, error) {
	var (
		responses []DebtorResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		accounts, err := repos.Debtors().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.Debtors().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses = ToDebtorResponses(accounts)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// DeleteDebtor removes a debtor account entirely
func (s *Service) DeleteDebtor(ctx context.Context, debtorID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.Repositories) error {
		if _, err := repos.Debtors().FindByID(ctx, debtorID); err != nil {
			return err
		}
		return repos.Debtors().Delete(ctx, debtorID)
	})
}
