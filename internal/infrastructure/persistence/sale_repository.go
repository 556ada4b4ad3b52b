package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements sale.Repository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale record by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.SaleRecord, error) {
	var record sale.SaleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds all sale records matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sale.SaleRecord, error) {
	var records []sale.SaleRecord
	query := applyFilter(r.db.WithContext(ctx).Model(&sale.SaleRecord{}), filter, "product_name", "debtor_name")
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByDateRange returns records created in [from, to)
func (r *GormSaleRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]sale.SaleRecord, error) {
	var records []sale.SaleRecord
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save persists a sale record
func (r *GormSaleRepository) Save(ctx context.Context, record *sale.SaleRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// SaveAll persists a batch of sale records
func (r *GormSaleRepository) SaveAll(ctx context.Context, records []*sale.SaleRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

// Delete deletes a sale record
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sale.SaleRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts sale records matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(r.db.WithContext(ctx).Model(&sale.SaleRecord{}), filter, "product_name", "debtor_name")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumQuantityByProductAndMonth aggregates sold quantities per product and
// calendar month for records created at or after from. Year and month
// extraction differs between postgres and sqlite, so the expressions are
// chosen per dialect.
func (r *GormSaleRepository) SumQuantityByProductAndMonth(ctx context.Context, from time.Time) ([]sale.MonthlyProductQuantity, error) {
	yearExpr := "CAST(EXTRACT(YEAR FROM created_at) AS INTEGER)"
	monthExpr := "CAST(EXTRACT(MONTH FROM created_at) AS INTEGER)"
	if r.db.Dialector.Name() == "sqlite" {
		yearExpr = "CAST(strftime('%Y', created_at) AS INTEGER)"
		monthExpr = "CAST(strftime('%m', created_at) AS INTEGER)"
	}

	var rows []sale.MonthlyProductQuantity
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			%s AS year,
			%s AS month,
			product_id,
			product_name,
			SUM(quantity) AS quantity
		FROM sale_records
		WHERE created_at >= ?
		GROUP BY 1, 2, 3, 4
		ORDER BY 1 DESC, 2 DESC`, yearExpr, monthExpr), from).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var _ sale.Repository = (*GormSaleRepository)(nil)
