package inventory

import (
	"context"
	"testing"

	"github.com/dokon/backoffice/internal/application/txn"
	"github.com/dokon/backoffice/internal/domain/inventory"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

func newInventoryService(stockRepo *MockStockRepository) *Service {
	scope := &txn.NoOpTransactionScope{StockRepo: stockRepo}
	return NewService(scope, nil)
}

func TestReceiveStock_IncreasesExistingEntry(t *testing.T) {
	productID := uuid.New()
	entry, err := inventory.NewStockEntry(productID, "Brake Pads", decimal.NewFromInt(5))
	assert.NoError(t, err)

	stockRepo := new(MockStockRepository)
	stockRepo.On("FindByProductID", mock.Anything, productID).Return(entry, nil)
	stockRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*inventory.StockEntry")).Return(nil)

	service := newInventoryService(stockRepo)
	response, err := service.ReceiveStock(context.Background(), ReceiveStockInput{
		ProductID:   productID,
		ProductName: "Brake Pads",
		Quantity:    decimal.NewFromInt(3),
	})

	assert.NoError(t, err)
	assert.True(t, response.Quantity.Equal(decimal.NewFromInt(8)))
	stockRepo.AssertExpectations(t)
	stockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReceiveStock_CreatesEntryOnFirstIntake(t *testing.T) {
	productID := uuid.New()

	stockRepo := new(MockStockRepository)
	stockRepo.On("FindByProductID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

	var saved *inventory.StockEntry
	stockRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.StockEntry")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*inventory.StockEntry)
		}).Return(nil)

	service := newInventoryService(stockRepo)
	response, err := service.ReceiveStock(context.Background(), ReceiveStockInput{
		ProductID:   productID,
		ProductName: "Oil Filter",
		Quantity:    decimal.NewFromInt(10),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Oil Filter", saved.ProductName)
	assert.True(t, saved.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, response.Quantity.Equal(decimal.NewFromInt(10)))
	stockRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestReceiveStock_RejectsNonPositiveQuantity(t *testing.T) {
	stockRepo := new(MockStockRepository)
	service := newInventoryService(stockRepo)

	_, err := service.ReceiveStock(context.Background(), ReceiveStockInput{
		ProductID:   uuid.New(),
		ProductName: "Brake Pads",
		Quantity:    decimal.Zero,
	})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	stockRepo.AssertNotCalled(t, "FindByProductID", mock.Anything, mock.Anything)
}

func TestListStock(t *testing.T) {
	first, _ := inventory.NewStockEntry(uuid.New(), "Brake Pads", decimal.NewFromInt(5))
	second, _ := inventory.NewStockEntry(uuid.New(), "Oil Filter", decimal.NewFromInt(2))

	stockRepo := new(MockStockRepository)
	stockRepo.On("FindAll", mock.Anything, mock.Anything).Return([]inventory.StockEntry{*first, *second}, nil)
	stockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	service := newInventoryService(stockRepo)
	entries, total, err := service.ListStock(context.Background(), shared.DefaultFilter())

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Brake Pads", entries[0].ProductName)
}
