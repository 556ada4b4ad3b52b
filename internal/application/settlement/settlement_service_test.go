package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dokon/backoffice/internal/application/txn"
	"github.com/dokon/backoffice/internal/domain/catalog"
	"github.com/dokon/backoffice/internal/domain/debtor"
	"github.com/dokon/backoffice/internal/domain/inventory"
	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDebtorRepository is a mock implementation of debtor.Repository
type MockDebtorRepository struct {
	mock.Mock
}

func (m *MockDebtorRepository) FindByID(ctx context.Context, id uuid.UUID) (*debtor.DebtorAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debtor.DebtorAccount), args.Error(1)
}

func (m *MockDebtorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]debtor.DebtorAccount, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]debtor.DebtorAccount), args.Error(1)
}

func (m *MockDebtorRepository) Save(ctx context.Context, account *debtor.DebtorAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockDebtorRepository) SaveWithLock(ctx context.Context, account *debtor.DebtorAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockDebtorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDebtorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockRepository is a mock implementation of inventory.StockEntryRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockEntry), args.Error(1)
}

func (m *MockStockRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockEntry, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockEntry), args.Error(1)
}

func (m *MockStockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockEntry), args.Error(1)
}

func (m *MockStockRepository) Save(ctx context.Context, entry *inventory.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockRepository) SaveWithLock(ctx context.Context, entry *inventory.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSaleRepository is a mock implementation of sale.Repository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.SaleRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.SaleRecord), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sale.SaleRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sale.SaleRecord), args.Error(1)
}

func (m *MockSaleRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]sale.SaleRecord, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]sale.SaleRecord), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, record *sale.SaleRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveAll(ctx context.Context, records []*sale.SaleRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) SumQuantityByProductAndMonth(ctx context.Context, from time.Time) ([]sale.MonthlyProductQuantity, error) {
	args := m.Called(ctx, from)
	return args.Get(0).([]sale.MonthlyProductQuantity), args.Error(1)
}

type settlementMocks struct {
	debtors  *MockDebtorRepository
	products *MockProductRepository
	stock    *MockStockRepository
	sales    *MockSaleRepository
}

func newSettlementService() (*Service, settlementMocks) {
	m := settlementMocks{
		debtors:  new(MockDebtorRepository),
		products: new(MockProductRepository),
		stock:    new(MockStockRepository),
		sales:    new(MockSaleRepository),
	}
	scope := &txn.NoOpTransactionScope{
		DebtorRepo:  m.debtors,
		ProductRepo: m.products,
		StockRepo:   m.stock,
		SaleRepo:    m.sales,
	}
	return NewService(scope, nil), m
}

func newTestAccount(t *testing.T, productID uuid.UUID, quantity, sellPrice decimal.Decimal) *debtor.DebtorAccount {
	t.Helper()
	line, err := debtor.NewOwedLine(productID, "Brake Pads", quantity, sellPrice, decimal.NewFromInt(30))
	assert.NoError(t, err)
	account, err := debtor.NewDebtorAccount("Aziz", "+998901234567", time.Now().AddDate(0, 1, 0), "usd", []debtor.OwedLine{line})
	assert.NoError(t, err)
	return account
}

func newTestStock(t *testing.T, productID uuid.UUID, quantity int64) *inventory.StockEntry {
	t.Helper()
	entry, err := inventory.NewStockEntry(productID, "Brake Pads", decimal.NewFromInt(quantity))
	assert.NoError(t, err)
	return entry
}

func TestSettlementService_ApplyPayment_FullSettlement(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))
	entry := newTestStock(t, productID, 5)
	product, _ := catalog.NewProduct("Brake Pads", decimal.NewFromInt(30))
	product.ID = productID

	var savedRecords []*sale.SaleRecord
	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.products.On("FindByID", ctx, productID).Return(product, nil)
	mocks.stock.On("FindByProductID", ctx, productID).Return(entry, nil)
	mocks.stock.On("SaveWithLock", ctx, entry).Return(nil)
	mocks.sales.On("SaveAll", ctx, mock.AnythingOfType("[]*sale.SaleRecord")).Run(func(args mock.Arguments) {
		savedRecords = args.Get(1).([]*sale.SaleRecord)
	}).Return(nil)
	mocks.debtors.On("SaveWithLock", ctx, account).Return(nil)

	result, err := service.ApplyPayment(ctx, ApplyPaymentInput{
		DebtorID:      account.ID,
		Amount:        decimal.NewFromInt(100),
		Currency:      "usd",
		Rate:          decimal.NewFromInt(11000),
		PaymentMethod: sale.PaymentCash,
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusClosed, result.Status)
	assert.True(t, result.Remaining.IsZero())
	assert.True(t, entry.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, account.DebtAmount.IsZero())
	assert.Empty(t, account.Products)
	assert.Empty(t, account.PaymentLog)
	assert.Len(t, savedRecords, 1)
	assert.True(t, savedRecords[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, savedRecords[0].TotalPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, sale.PaymentCash, savedRecords[0].PaymentMethod)
	assert.Equal(t, "Aziz", *savedRecords[0].DebtorName)
	mocks.debtors.AssertExpectations(t)
	mocks.stock.AssertExpectations(t)
	mocks.sales.AssertExpectations(t)
}

func TestSettlementService_ApplyPayment_Partial(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))

	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.debtors.On("SaveWithLock", ctx, account).Return(nil)

	result, err := service.ApplyPayment(ctx, ApplyPaymentInput{
		DebtorID: account.ID,
		Amount:   decimal.NewFromInt(40),
		Currency: "usd",
		Rate:     decimal.NewFromInt(11000),
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusPartiallyPaid, result.Status)
	assert.True(t, result.Remaining.Equal(decimal.NewFromInt(60)))
	assert.True(t, account.DebtAmount.Equal(decimal.NewFromInt(60)))
	assert.Len(t, account.Products, 1)
	assert.True(t, account.Products[0].ProductQuantity.Equal(decimal.NewFromInt(2)))
	assert.Len(t, account.PaymentLog, 1)
	assert.True(t, account.PaymentLog[0].Amount.Equal(decimal.NewFromInt(40)))
	mocks.stock.AssertNotCalled(t, "FindByProductID", mock.Anything, mock.Anything)
	mocks.sales.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	mocks.debtors.AssertExpectations(t)
}

func TestSettlementService_ApplyPayment_ConvertsToUSD(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))

	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.debtors.On("SaveWithLock", ctx, account).Return(nil)

	// 440000 uzs at 11000 per dollar is 40 usd
	result, err := service.ApplyPayment(ctx, ApplyPaymentInput{
		DebtorID: account.ID,
		Amount:   decimal.NewFromInt(440000),
		Currency: "UZS",
		Rate:     decimal.NewFromInt(11000),
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusPartiallyPaid, result.Status)
	assert.True(t, account.DebtAmount.Equal(decimal.NewFromInt(60)))
	assert.Len(t, account.PaymentLog, 1)
	assert.True(t, account.PaymentLog[0].Amount.Equal(decimal.NewFromInt(440000)))
	assert.Equal(t, "uzs", account.PaymentLog[0].Currency)
}

func TestSettlementService_ApplyPayment_InvalidAmount(t *testing.T) {
	service, mocks := newSettlementService()

	_, err := service.ApplyPayment(context.Background(), ApplyPaymentInput{
		DebtorID: uuid.New(),
		Amount:   decimal.Zero,
		Currency: "usd",
		Rate:     decimal.NewFromInt(11000),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	mocks.debtors.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSettlementService_ApplyPayment_InvalidRate(t *testing.T) {
	service, mocks := newSettlementService()

	_, err := service.ApplyPayment(context.Background(), ApplyPaymentInput{
		DebtorID: uuid.New(),
		Amount:   decimal.NewFromInt(100),
		Currency: "uzs",
		Rate:     decimal.Zero,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidRate))
	mocks.debtors.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSettlementService_ApplyPayment_DebtorNotFound(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()
	debtorID := uuid.New()

	mocks.debtors.On("FindByID", ctx, debtorID).Return(nil, shared.ErrNotFound)

	_, err := service.ApplyPayment(ctx, ApplyPaymentInput{
		DebtorID: debtorID,
		Amount:   decimal.NewFromInt(100),
		Currency: "usd",
		Rate:     decimal.NewFromInt(11000),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestSettlementService_ApplyPayment_InsufficientStock(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))
	entry := newTestStock(t, productID, 1)
	product, _ := catalog.NewProduct("Brake Pads", decimal.NewFromInt(30))
	product.ID = productID

	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.products.On("FindByID", ctx, productID).Return(product, nil)
	mocks.stock.On("FindByProductID", ctx, productID).Return(entry, nil)

	_, err := service.ApplyPayment(ctx, ApplyPaymentInput{
		DebtorID: account.ID,
		Amount:   decimal.NewFromInt(100),
		Currency: "usd",
		Rate:     decimal.NewFromInt(11000),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	// nothing was mutated
	assert.True(t, entry.Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, account.DebtAmount.Equal(decimal.NewFromInt(100)))
	assert.Len(t, account.Products, 1)
	mocks.stock.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	mocks.sales.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	mocks.debtors.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestSettlementService_ApplyPayment_SkipsMissingProduct(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	keptID := uuid.New()
	goneID := uuid.New()
	keptLine, _ := debtor.NewOwedLine(keptID, "Brake Pads", decimal.NewFromInt(2), decimal.NewFromInt(50), decimal.NewFromInt(30))
	goneLine, _ := debtor.NewOwedLine(goneID, "Oil Filter", decimal.NewFromInt(1), decimal.NewFromInt(20), decimal.NewFromInt(10))
	account, err := debtor.NewDebtorAccount("Aziz", "+998901234567", time.Now().AddDate(0, 1, 0), "usd", []debtor.OwedLine{keptLine, goneLine})
	assert.NoError(t, err)

	entry := newTestStock(t, keptID, 5)
	product, _ := catalog.NewProduct("Brake Pads", decimal.NewFromInt(30))
	product.ID = keptID

	var savedRecords []*sale.SaleRecord
	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.products.On("FindByID", ctx, keptID).Return(product, nil)
	mocks.products.On("FindByID", ctx, goneID).Return(nil, shared.ErrNotFound)
	mocks.stock.On("FindByProductID", ctx, keptID).Return(entry, nil)
	mocks.stock.On("SaveWithLock", ctx, entry).Return(nil)
	mocks.sales.On("SaveAll", ctx, mock.AnythingOfType("[]*sale.SaleRecord")).Run(func(args mock.Arguments) {
		savedRecords = args.Get(1).([]*sale.SaleRecord)
	}).Return(nil)
	mocks.debtors.On("SaveWithLock", ctx, account).Return(nil)

	result, err := service.ApplyPayment(ctx, ApplyPaymentInput{
		DebtorID: account.ID,
		Amount:   decimal.NewFromInt(120),
		Currency: "usd",
		Rate:     decimal.NewFromInt(11000),
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusClosed, result.Status)
	assert.Len(t, savedRecords, 1)
	assert.Equal(t, keptID, savedRecords[0].ProductID)
	mocks.stock.AssertNotCalled(t, "FindByProductID", ctx, goneID)
}

func TestSettlementService_ReduceDebt_Partial(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))

	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.debtors.On("SaveWithLock", ctx, account).Return(nil)

	result, err := service.ReduceDebt(ctx, account.ID, decimal.NewFromInt(30))

	assert.NoError(t, err)
	assert.Equal(t, StatusPartiallyPaid, result.Status)
	assert.True(t, result.Remaining.Equal(decimal.NewFromInt(70)))
	assert.Len(t, account.PaymentLog, 1)
	mocks.sales.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

func TestSettlementService_ReduceDebt_ClosesAccount(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))

	var savedRecords []*sale.SaleRecord
	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.sales.On("SaveAll", ctx, mock.AnythingOfType("[]*sale.SaleRecord")).Run(func(args mock.Arguments) {
		savedRecords = args.Get(1).([]*sale.SaleRecord)
	}).Return(nil)
	mocks.debtors.On("SaveWithLock", ctx, account).Return(nil)

	result, err := service.ReduceDebt(ctx, account.ID, decimal.NewFromInt(100))

	assert.NoError(t, err)
	assert.Equal(t, StatusClosed, result.Status)
	assert.True(t, account.DebtAmount.IsZero())
	assert.Empty(t, account.Products)
	assert.Len(t, savedRecords, 1)
	assert.Equal(t, sale.PaymentCreditSettled, savedRecords[0].PaymentMethod)
	// raw debt adjustments never touch stock
	mocks.stock.AssertNotCalled(t, "FindByProductID", mock.Anything, mock.Anything)
}

func TestSettlementService_ReturnProduct(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))
	entry := newTestStock(t, productID, 3)
	product, _ := catalog.NewProduct("Brake Pads", decimal.NewFromInt(30))
	product.ID = productID

	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.products.On("FindByID", ctx, productID).Return(product, nil)
	mocks.stock.On("FindByProductID", ctx, productID).Return(entry, nil)
	mocks.stock.On("SaveWithLock", ctx, entry).Return(nil)
	mocks.debtors.On("SaveWithLock", ctx, account).Return(nil)

	result, err := service.ReturnProduct(ctx, account.ID, productID, decimal.NewFromInt(1))

	assert.NoError(t, err)
	assert.Equal(t, StatusReturned, result.Status)
	assert.True(t, account.DebtAmount.Equal(decimal.NewFromInt(50)))
	assert.Len(t, account.Products, 1)
	assert.True(t, account.Products[0].ProductQuantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, entry.Quantity.Equal(decimal.NewFromInt(4)))
	mocks.debtors.AssertExpectations(t)
	mocks.stock.AssertExpectations(t)
}

func TestSettlementService_ReturnProduct_RecreatesStockEntry(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))
	product, _ := catalog.NewProduct("Brake Pads", decimal.NewFromInt(30))
	product.ID = productID

	var createdEntry *inventory.StockEntry
	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.products.On("FindByID", ctx, productID).Return(product, nil)
	mocks.stock.On("FindByProductID", ctx, productID).Return(nil, shared.ErrNotFound)
	mocks.stock.On("Save", ctx, mock.AnythingOfType("*inventory.StockEntry")).Run(func(args mock.Arguments) {
		createdEntry = args.Get(1).(*inventory.StockEntry)
	}).Return(nil)
	mocks.debtors.On("SaveWithLock", ctx, account).Return(nil)

	result, err := service.ReturnProduct(ctx, account.ID, productID, decimal.NewFromInt(2))

	assert.NoError(t, err)
	assert.Equal(t, StatusReturned, result.Status)
	assert.NotNil(t, createdEntry)
	assert.True(t, createdEntry.Quantity.Equal(decimal.NewFromInt(2)))
	// returning the full owed quantity removes the line
	assert.Empty(t, account.Products)
	assert.True(t, account.DebtAmount.IsZero())
}

func TestSettlementService_ReturnProduct_PartialFailure(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))
	entry := newTestStock(t, productID, 3)
	product, _ := catalog.NewProduct("Brake Pads", decimal.NewFromInt(30))
	product.ID = productID

	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.products.On("FindByID", ctx, productID).Return(product, nil)
	mocks.stock.On("FindByProductID", ctx, productID).Return(entry, nil)
	mocks.stock.On("SaveWithLock", ctx, entry).Return(nil)
	mocks.debtors.On("SaveWithLock", ctx, account).Return(errors.New("connection reset"))

	_, err := service.ReturnProduct(ctx, account.ID, productID, decimal.NewFromInt(1))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrPartialFailure))
}

func TestSettlementService_EditDebtor(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))

	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.debtors.On("Save", ctx, account).Return(nil)

	name := "Bekzod"
	amount := decimal.NewFromInt(75)
	response, err := service.EditDebtor(ctx, account.ID, DebtorPatch{Name: &name, DebtAmount: &amount})

	assert.NoError(t, err)
	assert.Equal(t, "Bekzod", response.Name)
	assert.True(t, response.DebtAmount.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "Bekzod", account.Name)
	mocks.debtors.AssertExpectations(t)
}

func TestSettlementService_DeleteDebtor(t *testing.T) {
	service, mocks := newSettlementService()
	ctx := context.Background()

	productID := uuid.New()
	account := newTestAccount(t, productID, decimal.NewFromInt(2), decimal.NewFromInt(50))

	mocks.debtors.On("FindByID", ctx, account.ID).Return(account, nil)
	mocks.debtors.On("Delete", ctx, account.ID).Return(nil)

	err := service.DeleteDebtor(ctx, account.ID)

	assert.NoError(t, err)
	mocks.debtors.AssertExpectations(t)
}
