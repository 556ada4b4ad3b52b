package persistence

import (
	"context"
	"errors"

	"github.com/dokon/backoffice/internal/domain/debtor"
	"github.com/dokon/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDebtorRepository implements debtor.Repository using GORM. Saving an
// account replaces its owned children wholesale: owed lines and payment
// entries dropped from the aggregate (a close, a drained return line) must
// not linger in storage.
type GormDebtorRepository struct {
	db *gorm.DB
}

// NewGormDebtorRepository creates a new GormDebtorRepository
func NewGormDebtorRepository(db *gorm.DB) *GormDebtorRepository {
	return &GormDebtorRepository{db: db}
}

// FindByID finds a debtor account with its owed lines and payment log
func (r *GormDebtorRepository) FindByID(ctx context.Context, id uuid.UUID) (*debtor.DebtorAccount, error) {
	var account debtor.DebtorAccount
	if err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("PaymentLog").
		First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAll finds all debtor accounts matching the filter
func (r *GormDebtorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]debtor.DebtorAccount, error) {
	var accounts []debtor.DebtorAccount
	query := applyFilter(r.db.WithContext(ctx).Model(&debtor.DebtorAccount{}), filter, "name", "phone").
		Preload("Products").
		Preload("PaymentLog")
	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save persists the whole aggregate, replacing children
func (r *GormDebtorRepository) Save(ctx context.Context, account *debtor.DebtorAccount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products", "PaymentLog").Save(account).Error; err != nil {
			return err
		}
		return r.replaceChildren(tx, account)
	})
}

// SaveWithLock persists the aggregate only if the stored version matches
// the one the account was read at
func (r *GormDebtorRepository) SaveWithLock(ctx context.Context, account *debtor.DebtorAccount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&debtor.DebtorAccount{}).
			Where("id = ? AND version = ?", account.ID, account.Version-1).
			Updates(map[string]interface{}{
				"name":        account.Name,
				"phone":       account.Phone,
				"due_date":    account.DueDate,
				"currency":    account.Currency,
				"debt_amount": account.DebtAmount,
				"version":     account.Version,
				"updated_at":  account.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.replaceChildren(tx, account)
	})
}

func (r *GormDebtorRepository) replaceChildren(tx *gorm.DB, account *debtor.DebtorAccount) error {
	if err := tx.Where("debtor_id = ?", account.ID).Delete(&debtor.OwedLine{}).Error; err != nil {
		return err
	}
	if err := tx.Where("debtor_id = ?", account.ID).Delete(&debtor.PaymentEntry{}).Error; err != nil {
		return err
	}
	if len(account.Products) > 0 {
		if err := tx.Create(&account.Products).Error; err != nil {
			return err
		}
	}
	if len(account.PaymentLog) > 0 {
		if err := tx.Create(&account.PaymentLog).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a debtor account with its children
func (r *GormDebtorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("debtor_id = ?", id).Delete(&debtor.OwedLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("debtor_id = ?", id).Delete(&debtor.PaymentEntry{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&debtor.DebtorAccount{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts debtor accounts matching the filter
func (r *GormDebtorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(r.db.WithContext(ctx).Model(&debtor.DebtorAccount{}), filter, "name", "phone")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ debtor.Repository = (*GormDebtorRepository)(nil)
