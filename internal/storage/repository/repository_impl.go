package repository

import (
	"context"
	"errors"

	"github.com/larderhq/larder/internal/storage/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertLocation(ctx context.Context, db *gorm.DB, location *domain.Location) error {
	return db.WithContext(ctx).Create(location).Error
}

func (r *repo) DeleteLocation(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	result := db.WithContext(ctx).Where("name = ?", name).Delete(&domain.Location{})
	return result.RowsAffected, result.Error
}

func (r *repo) ListLocations(ctx context.Context, db *gorm.DB, pattern string) ([]domain.Location, error) {
	if pattern == "" {
		pattern = "%"
	}
	var locations []domain.Location
	err := db.WithContext(ctx).
		Where("name LIKE ?", pattern).
		Order("name").
		Find(&locations).Error
	return locations, err
}

func (r *repo) InsertStorage(ctx context.Context, db *gorm.DB, storage *domain.Storage) error {
	return db.WithContext(ctx).Create(storage).Error
}

func (r *repo) DeleteStorage(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	result := db.WithContext(ctx).Where("storage_name = ?", name).Delete(&domain.Storage{})
	return result.RowsAffected, result.Error
}

func (r *repo) FindStorage(ctx context.Context, db *gorm.DB, name string) (*domain.Storage, error) {
	var storage domain.Storage
	err := db.WithContext(ctx).
		Where("storage_name = ?", name).
		First(&storage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &storage, nil
}

func (r *repo) ListStorages(ctx context.Context, db *gorm.DB, filter domain.StorageFilter) ([]domain.Storage, error) {
	stmt := db.WithContext(ctx).Model(&domain.Storage{})
	if filter.StorageName != "" {
		stmt = stmt.Where("storage_name LIKE ?", filter.StorageName)
	}
	if filter.LocationName != "" {
		stmt = stmt.Where("location_name LIKE ?", filter.LocationName)
	}
	if filter.CapacityHigh > 0 {
		stmt = stmt.Where("capacity >= ? AND capacity <= ?", filter.CapacityLow, filter.CapacityHigh)
	}
	if filter.Kind != "" {
		stmt = stmt.Where("storage_name IN (?)", taggedNames(db, filter.Kind))
	}

	var storages []domain.Storage
	err := stmt.Order("storage_name").Find(&storages).Error
	return storages, err
}

func (r *repo) TagStorage(ctx context.Context, db *gorm.DB, kind domain.StorageKind, name string) error {
	switch kind {
	case domain.KindDry:
		return db.WithContext(ctx).Create(&domain.DryStorage{Name: name}).Error
	case domain.KindAppliance:
		return db.WithContext(ctx).Create(&domain.Appliance{Name: name}).Error
	case domain.KindFridge:
		return db.WithContext(ctx).Create(&domain.Fridge{Name: name}).Error
	case domain.KindFreezer:
		return db.WithContext(ctx).Create(&domain.Freezer{Name: name}).Error
	}
	return errors.New("unknown storage kind")
}

func (r *repo) UntagStorage(ctx context.Context, db *gorm.DB, kind domain.StorageKind, name string) (int64, error) {
	var result *gorm.DB
	switch kind {
	case domain.KindDry:
		result = db.WithContext(ctx).Where("name = ?", name).Delete(&domain.DryStorage{})
	case domain.KindAppliance:
		result = db.WithContext(ctx).Where("name = ?", name).Delete(&domain.Appliance{})
	case domain.KindFridge:
		result = db.WithContext(ctx).Where("name = ?", name).Delete(&domain.Fridge{})
	case domain.KindFreezer:
		result = db.WithContext(ctx).Where("name = ?", name).Delete(&domain.Freezer{})
	default:
		return 0, errors.New("unknown storage kind")
	}
	return result.RowsAffected, result.Error
}

func (r *repo) TaggedStorages(ctx context.Context, db *gorm.DB, kind domain.StorageKind) ([]string, error) {
	var names []string
	err := taggedNames(db.WithContext(ctx), kind).Pluck("name", &names).Error
	return names, err
}

func taggedNames(db *gorm.DB, kind domain.StorageKind) *gorm.DB {
	switch kind {
	case domain.KindDry:
		return db.Model(&domain.DryStorage{}).Select("name")
	case domain.KindAppliance:
		return db.Model(&domain.Appliance{}).Select("name")
	case domain.KindFridge:
		return db.Model(&domain.Fridge{}).Select("name")
	case domain.KindFreezer:
		return db.Model(&domain.Freezer{}).Select("name")
	}
	return db
}
