package repository

import (
	"context"
	"errors"

	"github.com/larderhq/larder/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, itemType *domain.ItemType) error {
	return db.WithContext(ctx).Create(itemType).Error
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, name string) (*domain.ItemType, error) {
	var itemType domain.ItemType
	err := db.WithContext(ctx).
		Where("name = ?", name).
		First(&itemType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &itemType, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, namePattern, unitPattern string) ([]domain.ItemType, error) {
	var itemTypes []domain.ItemType
	err := db.WithContext(ctx).
		Where("name LIKE ? AND unit LIKE ?", orAny(namePattern), orAny(unitPattern)).
		Order("name").
		Find(&itemTypes).Error
	return itemTypes, err
}

func (r *repo) Tag(ctx context.Context, db *gorm.DB, kind domain.ItemKind, name string) error {
	switch kind {
	case domain.KindConsumable:
		return db.WithContext(ctx).Create(&domain.Consumable{Name: name}).Error
	case domain.KindDurable:
		return db.WithContext(ctx).Create(&domain.Durable{Name: name}).Error
	case domain.KindFood:
		return db.WithContext(ctx).Create(&domain.Food{Name: name}).Error
	case domain.KindNotFood:
		return db.WithContext(ctx).Create(&domain.NotFood{Name: name}).Error
	}
	return errors.New("unknown item kind")
}

func (r *repo) Tagged(ctx context.Context, db *gorm.DB, kind domain.ItemKind, name string) (bool, error) {
	var count int64
	err := tagModel(db.WithContext(ctx), kind).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *repo) ListTagged(ctx context.Context, db *gorm.DB, kind domain.ItemKind, namePattern, unitPattern string) ([]domain.ItemType, error) {
	var itemTypes []domain.ItemType
	err := db.WithContext(ctx).
		Model(&domain.ItemType{}).
		Where("name IN (?)", tagModel(db, kind).Select("name")).
		Where("name LIKE ? AND unit LIKE ?", orAny(namePattern), orAny(unitPattern)).
		Order("name").
		Find(&itemTypes).Error
	return itemTypes, err
}

func tagModel(db *gorm.DB, kind domain.ItemKind) *gorm.DB {
	switch kind {
	case domain.KindConsumable:
		return db.Model(&domain.Consumable{})
	case domain.KindDurable:
		return db.Model(&domain.Durable{})
	case domain.KindFood:
		return db.Model(&domain.Food{})
	case domain.KindNotFood:
		return db.Model(&domain.NotFood{})
	}
	return db
}

func orAny(pattern string) string {
	if pattern == "" {
		return "%"
	}
	return pattern
}
