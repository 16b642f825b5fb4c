package seed

import (
	"context"
	"errors"

	"gorm.io/gorm"

	householddomain "github.com/larderhq/larder/internal/household/domain"
	storagedomain "github.com/larderhq/larder/internal/storage/domain"
)

const (
	defaultLocation = "Home"
	defaultStorage  = "Pantry"
	defaultParent   = "admin"
)

// EnsureDefaults seeds a location, a dry storage and a parent user so
// a fresh install can record purchases without any setup.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureLocationTx(ctx, tx); err != nil {
			return err
		}
		if err := ensureStorageTx(ctx, tx); err != nil {
			return err
		}
		return ensureParentTx(ctx, tx)
	})
}

func ensureLocationTx(ctx context.Context, tx *gorm.DB) error {
	var loc storagedomain.Location
	err := tx.WithContext(ctx).Where("name = ?", defaultLocation).First(&loc).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	loc = storagedomain.Location{Name: defaultLocation}
	return tx.WithContext(ctx).Create(&loc).Error
}

func ensureStorageTx(ctx context.Context, tx *gorm.DB) error {
	var st storagedomain.Storage
	err := tx.WithContext(ctx).Where("storage_name = ?", defaultStorage).First(&st).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	st = storagedomain.Storage{
		StorageName:  defaultStorage,
		LocationName: defaultLocation,
		Capacity:     1,
	}
	if err := tx.WithContext(ctx).Create(&st).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(&storagedomain.DryStorage{Name: defaultStorage}).Error
}

func ensureParentTx(ctx context.Context, tx *gorm.DB) error {
	var user householddomain.User
	err := tx.WithContext(ctx).Where("name = ?", defaultParent).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	user = householddomain.User{Name: defaultParent}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(&householddomain.Parent{Name: defaultParent}).Error
}
