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

	"github.com/larderhq/larder/internal/migration"
	"github.com/larderhq/larder/internal/storage/domain"
	storagerepo "github.com/larderhq/larder/internal/storage/repository"
	"github.com/larderhq/larder/pkg/apperr"
)

var testDBSeq atomic.Int64

func newStorageService(t *testing.T) (*gorm.DB, domain.Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:storage%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	svc := New(Params{
		DB:   conn,
		Log:  zap.NewNop(),
		Repo: storagerepo.Provide(),
	})
	return conn, svc
}

func TestAddLocationAndStorage(t *testing.T) {
	conn, svc := newStorageService(t)

	_, err := svc.AddLocation(context.Background(), "Home")
	require.NoError(t, err)

	_, err = svc.AddLocation(context.Background(), "Home")
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))

	storage, err := svc.AddStorage(context.Background(), domain.AddStorageRequest{
		StorageName:  "Chest Freezer",
		LocationName: "Home",
		Capacity:     2,
		Kind:         domain.KindFreezer,
	})
	require.NoError(t, err)
	assert.Equal(t, "Chest Freezer", storage.StorageName)

	// Freezer implies appliance.
	var applianceCount, freezerCount int64
	conn.Model(&domain.Appliance{}).Count(&applianceCount)
	conn.Model(&domain.Freezer{}).Count(&freezerCount)
	assert.EqualValues(t, 1, applianceCount)
	assert.EqualValues(t, 1, freezerCount)
}

func TestAddStorageValidation(t *testing.T) {
	_, svc := newStorageService(t)

	_, err := svc.AddStorage(context.Background(), domain.AddStorageRequest{
		StorageName:  "Shelf",
		LocationName: "Home",
		Capacity:     3,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.AddStorage(context.Background(), domain.AddStorageRequest{
		StorageName: "Shelf",
		Capacity:    1,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAddStorageUnknownLocation(t *testing.T) {
	_, svc := newStorageService(t)

	_, err := svc.AddStorage(context.Background(), domain.AddStorageRequest{
		StorageName:  "Shelf",
		LocationName: "Nowhere",
		Capacity:     1,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestDeleteStorageDropsTags(t *testing.T) {
	conn, svc := newStorageService(t)

	_, err := svc.AddLocation(context.Background(), "Home")
	require.NoError(t, err)
	_, err = svc.AddStorage(context.Background(), domain.AddStorageRequest{
		StorageName:  "Garage Fridge",
		LocationName: "Home",
		Capacity:     1,
		Kind:         domain.KindFridge,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStorage(context.Background(), "Garage Fridge"))

	var storageCount, fridgeCount, applianceCount int64
	conn.Model(&domain.Storage{}).Count(&storageCount)
	conn.Model(&domain.Fridge{}).Count(&fridgeCount)
	conn.Model(&domain.Appliance{}).Count(&applianceCount)
	assert.Zero(t, storageCount)
	assert.Zero(t, fridgeCount)
	assert.Zero(t, applianceCount)

	assert.True(t, apperr.IsKind(svc.DeleteStorage(context.Background(), "Garage Fridge"), apperr.KindNotFound))
}

func TestListStoragesByKind(t *testing.T) {
	_, svc := newStorageService(t)

	_, err := svc.AddLocation(context.Background(), "Home")
	require.NoError(t, err)

	for name, kind := range map[string]domain.StorageKind{
		"Pantry":     domain.KindDry,
		"Fridge":     domain.KindFridge,
		"Deep Chest": domain.KindFreezer,
	} {
		_, err = svc.AddStorage(context.Background(), domain.AddStorageRequest{
			StorageName:  name,
			LocationName: "Home",
			Capacity:     1,
			Kind:         kind,
		})
		require.NoError(t, err)
	}

	fridges, err := svc.ListStorages(context.Background(), domain.StorageFilter{Kind: domain.KindFridge})
	require.NoError(t, err)
	require.Len(t, fridges, 1)
	assert.Equal(t, "Fridge", fridges[0].StorageName)

	appliances, err := svc.ListStorages(context.Background(), domain.StorageFilter{Kind: domain.KindAppliance})
	require.NoError(t, err)
	assert.Len(t, appliances, 2)

	all, err := svc.ListStorages(context.Background(), domain.StorageFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
