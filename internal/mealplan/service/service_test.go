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
	"github.com/larderhq/larder/internal/clock"
	historydomain "github.com/larderhq/larder/internal/history/domain"
	historyrepo "github.com/larderhq/larder/internal/history/repository"
	householddomain "github.com/larderhq/larder/internal/household/domain"
	inventorydomain "github.com/larderhq/larder/internal/inventory/domain"
	inventoryrepo "github.com/larderhq/larder/internal/inventory/repository"
	"github.com/larderhq/larder/internal/mealplan/domain"
	mealplanrepo "github.com/larderhq/larder/internal/mealplan/repository"
	"github.com/larderhq/larder/internal/migration"
	recipedomain "github.com/larderhq/larder/internal/recipe/domain"
	reciperepo "github.com/larderhq/larder/internal/recipe/repository"
	storagedomain "github.com/larderhq/larder/internal/storage/domain"
	"github.com/larderhq/larder/pkg/apperr"
)

var testDBSeq atomic.Int64

func newMealPlan(t *testing.T) (*gorm.DB, domain.Service, *clock.FakeClock) {
	t.Helper()
	dsn := fmt.Sprintf("file:mealplan%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	require.NoError(t, conn.Create(&catalogdomain.ItemType{Name: "Flour", Unit: "cups"}).Error)
	require.NoError(t, conn.Create(&catalogdomain.Consumable{Name: "Flour"}).Error)
	require.NoError(t, conn.Create(&catalogdomain.Food{Name: "Flour"}).Error)
	require.NoError(t, conn.Create(&storagedomain.Location{Name: "Kitchen"}).Error)
	require.NoError(t, conn.Create(&storagedomain.Storage{StorageName: "Pantry", LocationName: "Kitchen", Capacity: 1}).Error)
	require.NoError(t, conn.Create(&householddomain.User{Name: "alice"}).Error)

	require.NoError(t, conn.Create(&recipedomain.Template{Name: "Pancakes"}).Error)
	require.NoError(t, conn.Create(&recipedomain.Recipe{RecipeName: "Pancakes"}).Error)
	require.NoError(t, conn.Create(&recipedomain.Ingredient{RecipeName: "Pancakes", FoodName: "Flour", Quantity: 3}).Error)

	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:        conn,
		Log:       zap.NewNop(),
		Clock:     clk,
		Repo:      mealplanrepo.Provide(),
		Recipes:   reciperepo.Provide(),
		Inventory: inventoryrepo.Provide(),
		History:   historyrepo.Provide(),
	})
	return conn, svc, clk
}

func addFlourBatch(t *testing.T, conn *gorm.DB, timestamp time.Time, quantity float64) {
	t.Helper()
	require.NoError(t, conn.Create(&inventorydomain.InventoryRecord{
		ItemName:    "Flour",
		StorageName: "Pantry",
		Timestamp:   inventorydomain.TruncateTimestamp(timestamp),
		Quantity:    quantity,
	}).Error)
}

func TestScheduleMeal(t *testing.T) {
	_, svc, clk := newMealPlan(t)

	meal, err := svc.ScheduleMeal(context.Background(), domain.Meal{
		RecipeName:   "Pancakes",
		Timestamp:    clk.Now(),
		LocationName: "Kitchen",
		MealType:     "breakfast",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", meal.RecipeName)

	_, err = svc.ScheduleMeal(context.Background(), domain.Meal{
		RecipeName:   "Pancakes",
		Timestamp:    clk.Now(),
		LocationName: "Kitchen",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))
}

func TestScheduleMealValidation(t *testing.T) {
	_, svc, clk := newMealPlan(t)

	_, err := svc.ScheduleMeal(context.Background(), domain.Meal{Timestamp: clk.Now()})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.ScheduleMeal(context.Background(), domain.Meal{
		RecipeName:   "Pancakes",
		LocationName: "Kitchen",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestConsumeMealDrainsOldestBatchesFirst(t *testing.T) {
	conn, svc, clk := newMealPlan(t)

	addFlourBatch(t, conn, clk.Now().Add(-48*time.Hour), 2)
	addFlourBatch(t, conn, clk.Now().Add(-time.Hour), 5)

	mealTime := clk.Now()
	_, err := svc.ScheduleMeal(context.Background(), domain.Meal{
		RecipeName:   "Pancakes",
		Timestamp:    mealTime,
		LocationName: "Kitchen",
		MealType:     "dinner",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ConsumeMeal(context.Background(), "Pancakes", mealTime, "alice"))

	// The older batch is gone and the newer one covers the remainder.
	var batches []inventorydomain.InventoryRecord
	require.NoError(t, conn.Order("timestamp").Find(&batches).Error)
	require.Len(t, batches, 1)
	assert.Equal(t, 4.0, batches[0].Quantity)

	var entry historydomain.History
	require.NoError(t, conn.First(&entry, "item_name = ?", "Flour").Error)
	assert.Equal(t, 3.0, entry.Quantity)

	var used historydomain.Used
	require.NoError(t, conn.First(&used, "item_name = ?", "Flour").Error)
	assert.Equal(t, "alice", used.UserName)

	var mealCount int64
	conn.Model(&domain.Meal{}).Count(&mealCount)
	assert.Zero(t, mealCount)
}

func TestConsumeMealMissingSchedule(t *testing.T) {
	conn, svc, clk := newMealPlan(t)

	addFlourBatch(t, conn, clk.Now().Add(-time.Hour), 5)

	err := svc.ConsumeMeal(context.Background(), "Pancakes", clk.Now(), "alice")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// The ingredient drain must roll back with the missing schedule row.
	var batch inventorydomain.InventoryRecord
	require.NoError(t, conn.First(&batch, "item_name = ?", "Flour").Error)
	assert.Equal(t, 5.0, batch.Quantity)

	var historyCount int64
	conn.Model(&historydomain.History{}).Count(&historyCount)
	assert.Zero(t, historyCount)
}

func TestConsumeMealWithoutInventory(t *testing.T) {
	conn, svc, clk := newMealPlan(t)

	mealTime := clk.Now()
	_, err := svc.ScheduleMeal(context.Background(), domain.Meal{
		RecipeName:   "Pancakes",
		Timestamp:    mealTime,
		LocationName: "Kitchen",
	})
	require.NoError(t, err)

	err = svc.ConsumeMeal(context.Background(), "Pancakes", mealTime, "alice")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var mealCount int64
	conn.Model(&domain.Meal{}).Count(&mealCount)
	assert.EqualValues(t, 1, mealCount)
}

func TestRemoveMeal(t *testing.T) {
	_, svc, clk := newMealPlan(t)

	mealTime := clk.Now()
	_, err := svc.ScheduleMeal(context.Background(), domain.Meal{
		RecipeName:   "Pancakes",
		Timestamp:    mealTime,
		LocationName: "Kitchen",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMeal(context.Background(), "Pancakes", mealTime))
	assert.True(t, apperr.IsKind(svc.RemoveMeal(context.Background(), "Pancakes", mealTime), apperr.KindNotFound))
}
