package persistence

import (
	"context"
	"errors"

	"github.com/dokon/backoffice/internal/domain/master"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMasterRepository implements master.Repository using GORM. Saving a
// master replaces the nested car aggregates wholesale so that a flushed
// billing cycle also clears the persisted car sales and payment log.
type GormMasterRepository struct {
	db *gorm.DB
}

// NewGormMasterRepository creates a new GormMasterRepository
func NewGormMasterRepository(db *gorm.DB) *GormMasterRepository {
	return &GormMasterRepository{db: db}
}

// FindByID finds a master with cars and their billing children
func (r *GormMasterRepository) FindByID(ctx context.Context, id uuid.UUID) (*master.Master, error) {
	var m master.Master
	if err := r.db.WithContext(ctx).
		Preload("Cars").
		Preload("Cars.Sales").
		Preload("Cars.PaymentLog").
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindAll finds all masters matching the filter
func (r *GormMasterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]master.Master, error) {
	var masters []master.Master
	query := applyFilter(r.db.WithContext(ctx).Model(&master.Master{}), filter, "name", "phone").
		Preload("Cars").
		Preload("Cars.Sales").
		Preload("Cars.PaymentLog")
	if err := query.Find(&masters).Error; err != nil {
		return nil, err
	}
	return masters, nil
}

// Save persists the whole aggregate, replacing cars and their children
func (r *GormMasterRepository) Save(ctx context.Context, m *master.Master) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Cars").Save(m).Error; err != nil {
			return err
		}
		if err := deleteCarChildren(tx, m.ID); err != nil {
			return err
		}
		if err := tx.Where("master_id = ?", m.ID).Delete(&master.Car{}).Error; err != nil {
			return err
		}
		for i := range m.Cars {
			car := &m.Cars[i]
			if err := tx.Omit("Sales", "PaymentLog").Create(car).Error; err != nil {
				return err
			}
			if len(car.Sales) > 0 {
				if err := tx.Create(&car.Sales).Error; err != nil {
					return err
				}
			}
			if len(car.PaymentLog) > 0 {
				if err := tx.Create(&car.PaymentLog).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Delete removes a master and everything billed under them
func (r *GormMasterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCarChildren(tx, id); err != nil {
			return err
		}
		if err := tx.Where("master_id = ?", id).Delete(&master.Car{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&master.Master{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func deleteCarChildren(tx *gorm.DB, masterID uuid.UUID) error {
	carIDs := tx.Model(&master.Car{}).Select("id").Where("master_id = ?", masterID)
	if err := tx.Where("car_id IN (?)", carIDs).Delete(&master.CarSale{}).Error; err != nil {
		return err
	}
	carIDs = tx.Model(&master.Car{}).Select("id").Where("master_id = ?", masterID)
	return tx.Where("car_id IN (?)", carIDs).Delete(&master.CarPayment{}).Error
}

// Count counts masters matching the filter
func (r *GormMasterRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(r.db.WithContext(ctx).Model(&master.Master{}), filter, "name", "phone")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ master.Repository = (*GormMasterRepository)(nil)
