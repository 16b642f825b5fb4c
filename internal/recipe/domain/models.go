package domain

import (
	catalogdomain "github.com/larderhq/larder/internal/catalog/domain"
	mealplandomain "github.com/larderhq/larder/internal/mealplan/domain"
)

// Template is the root naming table recipes hang off.
type Template struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
}

func (Template) TableName() string { return "templates" }

// Recipe names a meal template. The ingredient and schedule relations are
// declared here parent-side so their foreign keys land on the child tables.
type Recipe struct {
	RecipeName string `gorm:"column:recipe_name;primaryKey" json:"recipe_name"`

	Template    Template              `gorm:"foreignKey:RecipeName;references:Name" json:"-"`
	Ingredients []Ingredient          `gorm:"foreignKey:RecipeName;references:RecipeName" json:"-"`
	Meals       []mealplandomain.Meal `gorm:"foreignKey:RecipeName;references:RecipeName" json:"-"`
}

func (Recipe) TableName() string { return "recipes" }

// Ingredient is one (food, quantity) requirement of a recipe. Quantity is
// schema-checked to be positive.
type Ingredient struct {
	RecipeName string  `gorm:"column:recipe_name;primaryKey" json:"recipe_name"`
	FoodName   string  `gorm:"column:food_name;primaryKey" json:"food_name"`
	Quantity   float64 `gorm:"column:quantity;not null;check:chk_ingredients_quantity,quantity > 0" json:"quantity"`

	Food catalogdomain.Food `gorm:"foreignKey:FoodName;references:Name" json:"-"`
}

func (Ingredient) TableName() string { return "ingredients" }

// IngredientInput is the request shape for AddRecipe.
type IngredientInput struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
}

// RecipeWithIngredients is the read model for listing.
type RecipeWithIngredients struct {
	RecipeName  string       `json:"recipe_name"`
	Ingredients []Ingredient `json:"ingredients"`
}

// ShoppingItem is one deficit line of the derived shopping list: the amount
// of a food required by scheduled meals that on-hand stock cannot cover.
type ShoppingItem struct {
	FoodName string  `json:"food_name"`
	Unit     string  `json:"unit"`
	Required float64 `json:"required"`
	OnHand   float64 `json:"on_hand"`
	Missing  float64 `json:"missing"`
}
