package repository

import (
	"context"
	"time"

	"github.com/larderhq/larder/internal/mealplan/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, meal *domain.Meal) error {
	return db.WithContext(ctx).Create(meal).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.MealFilter) ([]domain.Meal, error) {
	stmt := db.WithContext(ctx).Model(&domain.Meal{})
	if filter.RecipeName != "" {
		stmt = stmt.Where("recipe_name LIKE ?", filter.RecipeName)
	}
	if filter.LocationName != "" {
		stmt = stmt.Where("location_name LIKE ?", filter.LocationName)
	}
	if filter.MealType != "" {
		stmt = stmt.Where("meal_type LIKE ?", filter.MealType)
	}
	if filter.From != nil {
		stmt = stmt.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("timestamp <= ?", *filter.To)
	}

	var meals []domain.Meal
	err := stmt.Order("timestamp, recipe_name").Find(&meals).Error
	return meals, err
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, recipeName string, timestamp time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("recipe_name = ? AND timestamp = ?", recipeName, timestamp).
		Delete(&domain.Meal{})
	return result.RowsAffected, result.Error
}
