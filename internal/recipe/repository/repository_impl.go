package repository

import (
	"context"
	"time"

	"github.com/larderhq/larder/internal/recipe/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertTemplate(ctx context.Context, db *gorm.DB, name string) error {
	return db.WithContext(ctx).Create(&domain.Template{Name: name}).Error
}

func (r *repo) InsertRecipe(ctx context.Context, db *gorm.DB, name string) error {
	return db.WithContext(ctx).Create(&domain.Recipe{RecipeName: name}).Error
}

func (r *repo) InsertIngredients(ctx context.Context, db *gorm.DB, recipeName string, ingredients []domain.IngredientInput) error {
	rows := make([]domain.Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		rows = append(rows, domain.Ingredient{
			RecipeName: recipeName,
			FoodName:   ing.FoodName,
			Quantity:   ing.Quantity,
		})
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func (r *repo) ListRecipes(ctx context.Context, db *gorm.DB, pattern string) ([]domain.Recipe, error) {
	if pattern == "" {
		pattern = "%"
	}
	var recipes []domain.Recipe
	err := db.WithContext(ctx).
		Where("recipe_name LIKE ?", pattern).
		Order("recipe_name").
		Find(&recipes).Error
	return recipes, err
}

func (r *repo) IngredientsOf(ctx context.Context, db *gorm.DB, recipeName string) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	err := db.WithContext(ctx).
		Where("recipe_name = ?", recipeName).
		Order("food_name").
		Find(&ingredients).Error
	return ingredients, err
}

func (r *repo) DeleteRecipe(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	if err := db.WithContext(ctx).Where("recipe_name = ?", name).Delete(&domain.Ingredient{}).Error; err != nil {
		return 0, err
	}
	result := db.WithContext(ctx).Where("recipe_name = ?", name).Delete(&domain.Recipe{})
	if result.Error != nil {
		return 0, result.Error
	}
	if err := db.WithContext(ctx).Where("name = ?", name).Delete(&domain.Template{}).Error; err != nil {
		return 0, err
	}
	return result.RowsAffected, nil
}

func (r *repo) MissingIngredients(ctx context.Context, db *gorm.DB, until time.Time) ([]domain.ShoppingItem, error) {
	var items []domain.ShoppingItem
	err := db.WithContext(ctx).Raw(
		`SELECT req.food_name AS food_name,
			COALESCE(it.unit, '') AS unit,
			req.required AS required,
			COALESCE(inv.on_hand, 0) AS on_hand,
			req.required - COALESCE(inv.on_hand, 0) AS missing
		 FROM (
			SELECT i.food_name AS food_name, SUM(i.quantity) AS required
			FROM meal_schedule ms
			JOIN ingredients i ON i.recipe_name = ms.recipe_name
			WHERE ms.timestamp <= ?
			GROUP BY i.food_name
		 ) req
		 LEFT JOIN (
			SELECT item_name, SUM(quantity) AS on_hand
			FROM inventory
			GROUP BY item_name
		 ) inv ON inv.item_name = req.food_name
		 LEFT JOIN item_types it ON it.name = req.food_name
		 WHERE req.required > COALESCE(inv.on_hand, 0)
		 ORDER BY req.food_name`,
		until,
	).Scan(&items).Error
	return items, err
}
