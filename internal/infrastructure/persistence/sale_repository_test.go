package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSaleTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&sale.SaleRecord{})
	require.NoError(t, err)

	return db
}

func newCashRecord(t *testing.T, productID uuid.UUID, name string, quantity int64) *sale.SaleRecord {
	t.Helper()
	qty := decimal.NewFromInt(quantity)
	total := decimal.NewFromInt(50).Mul(qty)
	record, err := sale.NewSaleRecord(productID, name, decimal.NewFromInt(50), decimal.NewFromInt(30), "usd", qty, total, total, sale.PaymentCash, nil)
	require.NoError(t, err)
	return record
}

func TestSaleRepository_SumQuantityByProductAndMonth(t *testing.T) {
	db := setupSaleTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	padsID := uuid.New()
	filterID := uuid.New()

	require.NoError(t, repo.Save(ctx, newCashRecord(t, padsID, "Brake Pads", 2)))
	require.NoError(t, repo.Save(ctx, newCashRecord(t, padsID, "Brake Pads", 3)))
	require.NoError(t, repo.Save(ctx, newCashRecord(t, filterID, "Oil Filter", 4)))

	// A record from before the window must not contribute
	old := newCashRecord(t, padsID, "Brake Pads", 9)
	old.CreatedAt = from.AddDate(0, -2, 0)
	require.NoError(t, repo.Save(ctx, old))

	rows, err := repo.SumQuantityByProductAndMonth(ctx, from)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byProduct := make(map[uuid.UUID]sale.MonthlyProductQuantity, len(rows))
	for _, row := range rows {
		assert.Equal(t, now.Year(), row.Year)
		assert.Equal(t, int(now.Month()), row.Month)
		byProduct[row.ProductID] = row
	}

	assert.Equal(t, "Brake Pads", byProduct[padsID].ProductName)
	assert.True(t, byProduct[padsID].Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, byProduct[filterID].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestSaleRepository_FindByDateRange(t *testing.T) {
	db := setupSaleTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	require.NoError(t, repo.Save(ctx, newCashRecord(t, uuid.New(), "Brake Pads", 1)))

	yesterday := newCashRecord(t, uuid.New(), "Oil Filter", 1)
	yesterday.CreatedAt = from.AddDate(0, 0, -1)
	require.NoError(t, repo.Save(ctx, yesterday))

	records, err := repo.FindByDateRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Brake Pads", records[0].ProductName)
}
