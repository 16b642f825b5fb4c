package repository

import (
	"context"
	"errors"
	"time"

	"github.com/larderhq/larder/internal/inventory/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.InventoryRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindForUpdate(ctx context.Context, db *gorm.DB, key domain.Key) (*domain.InventoryRecord, error) {
	return find(byKey(db.WithContext(ctx), key), lockingSupported(db))
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, key domain.Key) (*domain.InventoryRecord, error) {
	return find(byKey(db.WithContext(ctx), key), false)
}

func (r *repo) UpdateQuantity(ctx context.Context, db *gorm.DB, key domain.Key, quantity float64) (int64, error) {
	result := byKey(db.WithContext(ctx).Model(&domain.InventoryRecord{}), key).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, key domain.Key) (int64, error) {
	result := byKey(db.WithContext(ctx), key).Delete(&domain.InventoryRecord{})
	return result.RowsAffected, result.Error
}

func (r *repo) Move(ctx context.Context, db *gorm.DB, key domain.Key, newStorageName string) (int64, error) {
	result := byKey(db.WithContext(ctx).Model(&domain.InventoryRecord{}), key).
		Update("storage_name", newStorageName)
	return result.RowsAffected, result.Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]domain.InventoryRecord, error) {
	stmt := db.WithContext(ctx).Model(&domain.InventoryRecord{}).
		Where("item_name LIKE ?", contains(filter.ItemName)).
		Where("storage_name LIKE ?", contains(filter.StorageName))

	if filter.ExpiryFrom != nil || filter.ExpiryTo != nil {
		from, to := time.Time{}, time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		if filter.ExpiryFrom != nil {
			from = *filter.ExpiryFrom
		}
		if filter.ExpiryTo != nil {
			to = *filter.ExpiryTo
		}
		if filter.IncludeNonPerishable {
			stmt = stmt.Where("(expiry IS NULL OR (expiry >= ? AND expiry <= ?))", from, to)
		} else {
			stmt = stmt.Where("expiry >= ? AND expiry <= ?", from, to)
		}
	}

	var records []domain.InventoryRecord
	err := stmt.Order("item_name, storage_name, timestamp").Find(&records).Error
	return records, err
}

func (r *repo) OldestBatches(ctx context.Context, db *gorm.DB, itemName string) ([]domain.InventoryRecord, error) {
	stmt := db.WithContext(ctx).
		Where("item_name = ?", itemName).
		Order("timestamp")
	if lockingSupported(db) {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var records []domain.InventoryRecord
	err := stmt.Find(&records).Error
	return records, err
}

func byKey(db *gorm.DB, key domain.Key) *gorm.DB {
	return db.Where("item_name = ? AND storage_name = ? AND timestamp = ?",
		key.ItemName, key.StorageName, key.Timestamp)
}

func find(stmt *gorm.DB, locked bool) (*domain.InventoryRecord, error) {
	if locked {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record domain.InventoryRecord
	err := stmt.First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// sqlite serializes writers and rejects FOR UPDATE.
func lockingSupported(db *gorm.DB) bool {
	return db.Dialector.Name() != "sqlite"
}

func contains(s string) string {
	return "%" + s + "%"
}
