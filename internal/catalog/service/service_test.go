package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/larderhq/larder/internal/catalog/domain"
	catalogrepo "github.com/larderhq/larder/internal/catalog/repository"
	"github.com/larderhq/larder/internal/migration"
	"github.com/larderhq/larder/pkg/apperr"
)

var testDBSeq atomic.Int64

func newCatalogService(t *testing.T) (*gorm.DB, domain.Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	svc := New(Params{
		DB:   conn,
		Log:  zap.NewNop(),
		Repo: catalogrepo.Provide(),
	})
	return conn, svc
}

func TestAddItemTypeFoodImpliesConsumable(t *testing.T) {
	conn, svc := newCatalogService(t)

	item, err := svc.AddItemType(context.Background(), domain.AddItemTypeRequest{
		Name: "Milk",
		Unit: "liters",
		Kind: domain.KindFood,
	})
	require.NoError(t, err)
	assert.Equal(t, "Milk", item.Name)

	var consumableCount, foodCount int64
	conn.Model(&domain.Consumable{}).Count(&consumableCount)
	conn.Model(&domain.Food{}).Count(&foodCount)
	assert.EqualValues(t, 1, consumableCount)
	assert.EqualValues(t, 1, foodCount)
}

func TestAddItemTypeDuplicate(t *testing.T) {
	_, svc := newCatalogService(t)

	_, err := svc.AddItemType(context.Background(), domain.AddItemTypeRequest{Name: "Milk", Unit: "liters"})
	require.NoError(t, err)

	_, err = svc.AddItemType(context.Background(), domain.AddItemTypeRequest{Name: "Milk", Unit: "liters"})
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))
}

func TestAddItemTypeRetagsExisting(t *testing.T) {
	conn, svc := newCatalogService(t)

	_, err := svc.AddItemType(context.Background(), domain.AddItemTypeRequest{Name: "Milk", Unit: "liters", Kind: domain.KindConsumable})
	require.NoError(t, err)

	// Re-adding with a deeper kind extends the tag chain instead of failing.
	_, err = svc.AddItemType(context.Background(), domain.AddItemTypeRequest{Name: "Milk", Unit: "liters", Kind: domain.KindFood})
	require.NoError(t, err)

	var itemCount, foodCount int64
	conn.Model(&domain.ItemType{}).Count(&itemCount)
	conn.Model(&domain.Food{}).Count(&foodCount)
	assert.EqualValues(t, 1, itemCount)
	assert.EqualValues(t, 1, foodCount)
}

func TestAddItemTypeValidation(t *testing.T) {
	_, svc := newCatalogService(t)

	_, err := svc.AddItemType(context.Background(), domain.AddItemTypeRequest{Name: " "})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.AddItemType(context.Background(), domain.AddItemTypeRequest{Name: "Milk", Kind: "gadget"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestListByKind(t *testing.T) {
	_, svc := newCatalogService(t)

	_, err := svc.AddItemType(context.Background(), domain.AddItemTypeRequest{Name: "Milk", Unit: "liters", Kind: domain.KindFood})
	require.NoError(t, err)
	_, err = svc.AddItemType(context.Background(), domain.AddItemTypeRequest{Name: "Soap", Unit: "bars", Kind: domain.KindNotFood})
	require.NoError(t, err)
	_, err = svc.AddItemType(context.Background(), domain.AddItemTypeRequest{Name: "Blender", Kind: domain.KindDurable})
	require.NoError(t, err)

	foods, err := svc.ListByKind(context.Background(), domain.KindFood, "", "")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Milk", foods[0].Name)

	consumables, err := svc.ListByKind(context.Background(), domain.KindConsumable, "", "")
	require.NoError(t, err)
	assert.Len(t, consumables, 2)

	_, err = svc.ListByKind(context.Background(), "gadget", "", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	all, err := svc.ListItemTypes(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
