package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/larderhq/larder/internal/catalog/domain"
	inventorydomain "github.com/larderhq/larder/internal/inventory/domain"
	mealplandomain "github.com/larderhq/larder/internal/mealplan/domain"
	"github.com/larderhq/larder/internal/migration"
	"github.com/larderhq/larder/internal/recipe/domain"
	reciperepo "github.com/larderhq/larder/internal/recipe/repository"
	storagedomain "github.com/larderhq/larder/internal/storage/domain"
	"github.com/larderhq/larder/pkg/apperr"
)

var testDBSeq atomic.Int64

func newRecipeService(t *testing.T) (*gorm.DB, domain.Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:recipe%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	for _, food := range []string{"Flour", "Eggs"} {
		require.NoError(t, conn.Create(&catalogdomain.ItemType{Name: food, Unit: "units"}).Error)
		require.NoError(t, conn.Create(&catalogdomain.Consumable{Name: food}).Error)
		require.NoError(t, conn.Create(&catalogdomain.Food{Name: food}).Error)
	}
	require.NoError(t, conn.Create(&storagedomain.Location{Name: "Kitchen"}).Error)
	require.NoError(t, conn.Create(&storagedomain.Storage{StorageName: "Pantry", LocationName: "Kitchen", Capacity: 1}).Error)

	svc := New(Params{
		DB:   conn,
		Log:  zap.NewNop(),
		Repo: reciperepo.Provide(),
	})
	return conn, svc
}

func TestAddRecipe(t *testing.T) {
	conn, svc := newRecipeService(t)

	recipe, err := svc.AddRecipe(context.Background(), "Pancakes", []domain.IngredientInput{
		{FoodName: "Flour", Quantity: 3},
		{FoodName: "Eggs", Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", recipe.RecipeName)
	assert.Len(t, recipe.Ingredients, 2)

	var ingredientCount int64
	conn.Model(&domain.Ingredient{}).Count(&ingredientCount)
	assert.EqualValues(t, 2, ingredientCount)
}

func TestAddRecipeValidation(t *testing.T) {
	_, svc := newRecipeService(t)

	_, err := svc.AddRecipe(context.Background(), " ", []domain.IngredientInput{{FoodName: "Flour", Quantity: 1}})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.AddRecipe(context.Background(), "Pancakes", nil)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAddRecipeDuplicate(t *testing.T) {
	_, svc := newRecipeService(t)

	_, err := svc.AddRecipe(context.Background(), "Pancakes", []domain.IngredientInput{{FoodName: "Flour", Quantity: 3}})
	require.NoError(t, err)

	_, err = svc.AddRecipe(context.Background(), "Pancakes", []domain.IngredientInput{{FoodName: "Flour", Quantity: 3}})
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))
}

func TestAddRecipeRollsBackOnUnknownFood(t *testing.T) {
	conn, svc := newRecipeService(t)

	_, err := svc.AddRecipe(context.Background(), "Mystery Pie", []domain.IngredientInput{
		{FoodName: "Flour", Quantity: 1},
		{FoodName: "Unicorn Tears", Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Nothing survives: not the template, recipe, or the valid ingredient.
	var templateCount, recipeCount, ingredientCount int64
	conn.Model(&domain.Template{}).Count(&templateCount)
	conn.Model(&domain.Recipe{}).Count(&recipeCount)
	conn.Model(&domain.Ingredient{}).Count(&ingredientCount)
	assert.Zero(t, templateCount)
	assert.Zero(t, recipeCount)
	assert.Zero(t, ingredientCount)
}

func TestListAndDeleteRecipe(t *testing.T) {
	_, svc := newRecipeService(t)

	_, err := svc.AddRecipe(context.Background(), "Pancakes", []domain.IngredientInput{{FoodName: "Flour", Quantity: 3}})
	require.NoError(t, err)

	recipes, err := svc.ListRecipes(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Len(t, recipes[0].Ingredients, 1)

	require.NoError(t, svc.DeleteRecipe(context.Background(), "Pancakes"))
	assert.True(t, apperr.IsKind(svc.DeleteRecipe(context.Background(), "Pancakes"), apperr.KindNotFound))
}

func TestShoppingList(t *testing.T) {
	conn, svc := newRecipeService(t)

	_, err := svc.AddRecipe(context.Background(), "Pancakes", []domain.IngredientInput{
		{FoodName: "Flour", Quantity: 3},
		{FoodName: "Eggs", Quantity: 2},
	})
	require.NoError(t, err)

	mealTime := time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC)
	require.NoError(t, conn.Create(&mealplandomain.Meal{
		RecipeName:   "Pancakes",
		Timestamp:    mealTime,
		LocationName: "Kitchen",
	}).Error)

	// One cup of flour on hand, no eggs at all.
	require.NoError(t, conn.Create(&inventorydomain.InventoryRecord{
		ItemName:    "Flour",
		StorageName: "Pantry",
		Timestamp:   mealTime.Add(-24 * time.Hour),
		Quantity:    1,
	}).Error)

	items, err := svc.ShoppingList(context.Background(), mealTime.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Eggs", items[0].FoodName)
	assert.Equal(t, 2.0, items[0].Missing)
	assert.Equal(t, "Flour", items[1].FoodName)
	assert.Equal(t, 1.0, items[1].OnHand)
	assert.Equal(t, 2.0, items[1].Missing)

	// A cutoff before the meal means nothing is required yet.
	items, err = svc.ShoppingList(context.Background(), mealTime.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, items)
}
