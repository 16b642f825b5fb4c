package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	InsertTemplate(ctx context.Context, db *gorm.DB, name string) error
	InsertRecipe(ctx context.Context, db *gorm.DB, name string) error
	InsertIngredients(ctx context.Context, db *gorm.DB, recipeName string, ingredients []IngredientInput) error

	ListRecipes(ctx context.Context, db *gorm.DB, pattern string) ([]Recipe, error)
	IngredientsOf(ctx context.Context, db *gorm.DB, recipeName string) ([]Ingredient, error)
	DeleteRecipe(ctx context.Context, db *gorm.DB, name string) (int64, error)

	MissingIngredients(ctx context.Context, db *gorm.DB, until time.Time) ([]ShoppingItem, error)
}

type Service interface {
	// AddRecipe creates the template row, the recipe row and one ingredient
	// row per pair inside one transaction.
	AddRecipe(ctx context.Context, recipeName string, ingredients []IngredientInput) (RecipeWithIngredients, error)
	ListRecipes(ctx context.Context, pattern string) ([]RecipeWithIngredients, error)
	DeleteRecipe(ctx context.Context, name string) error

	// ShoppingList derives the foods that meals scheduled before until
	// require beyond what inventory currently holds.
	ShoppingList(ctx context.Context, until time.Time) ([]ShoppingItem, error)
}
