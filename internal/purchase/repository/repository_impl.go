package repository

import (
	"context"

	"github.com/larderhq/larder/internal/purchase/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, purchase *domain.Purchase) error {
	return db.WithContext(ctx).Create(purchase).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.PurchaseFilter) ([]domain.Purchase, error) {
	stmt := db.WithContext(ctx).Model(&domain.Purchase{})
	if filter.ItemName != "" {
		stmt = stmt.Where("item_name LIKE ?", filter.ItemName)
	}
	if filter.Store != "" {
		stmt = stmt.Where("store LIKE ?", filter.Store)
	}
	if filter.From != nil {
		stmt = stmt.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("timestamp <= ?", *filter.To)
	}

	var purchases []domain.Purchase
	err := stmt.Order("timestamp DESC, item_name").Find(&purchases).Error
	return purchases, err
}
