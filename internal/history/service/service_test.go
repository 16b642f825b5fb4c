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
	"github.com/larderhq/larder/internal/history/domain"
	historyrepo "github.com/larderhq/larder/internal/history/repository"
	householddomain "github.com/larderhq/larder/internal/household/domain"
	"github.com/larderhq/larder/internal/migration"
	purchasedomain "github.com/larderhq/larder/internal/purchase/domain"
)

var testDBSeq atomic.Int64

func newHistoryService(t *testing.T) (*gorm.DB, domain.Service, domain.Repository) {
	t.Helper()
	dsn := fmt.Sprintf("file:history%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	require.NoError(t, conn.Create(&catalogdomain.ItemType{Name: "Milk", Unit: "liters"}).Error)
	require.NoError(t, conn.Create(&catalogdomain.ItemType{Name: "Bread", Unit: "loaves"}).Error)
	require.NoError(t, conn.Create(&householddomain.User{Name: "alice"}).Error)
	require.NoError(t, conn.Create(&householddomain.Parent{Name: "alice"}).Error)

	repo := historyrepo.Provide()
	svc := New(Params{DB: conn, Log: zap.NewNop(), Repo: repo})
	return conn, svc, repo
}

func TestListRecordsTagsKinds(t *testing.T) {
	conn, svc, repo := newHistoryService(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	require.NoError(t, repo.InsertUsed(ctx, conn, "Milk", base, 1.5, "alice"))
	require.NoError(t, repo.InsertWasted(ctx, conn, "Bread", base.Add(time.Hour), 0.5))

	records, err := svc.ListRecords(ctx, "", nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Ordered newest first.
	assert.Equal(t, "Bread", records[0].ItemName)
	assert.Equal(t, domain.RecordWasted, records[0].Kind)
	assert.Empty(t, records[0].User)

	assert.Equal(t, "Milk", records[1].ItemName)
	assert.Equal(t, domain.RecordUsed, records[1].Kind)
	assert.Equal(t, "alice", records[1].User)
	assert.Equal(t, 1.5, records[1].Quantity)
}

func TestListRecordsFilters(t *testing.T) {
	conn, svc, repo := newHistoryService(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	require.NoError(t, repo.InsertUsed(ctx, conn, "Milk", base, 1, "alice"))
	require.NoError(t, repo.InsertUsed(ctx, conn, "Milk", base.Add(48*time.Hour), 2, "alice"))

	records, err := svc.ListRecords(ctx, "Milk", nil, nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	from := base.Add(24 * time.Hour)
	records, err = svc.ListRecords(ctx, "", &from, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2.0, records[0].Quantity)

	to := base.Add(24 * time.Hour)
	records, err = svc.ListRecords(ctx, "", nil, &to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1.0, records[0].Quantity)
}

func TestUsageStats(t *testing.T) {
	conn, svc, repo := newHistoryService(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	require.NoError(t, repo.InsertUsed(ctx, conn, "Milk", base, 1.5, "alice"))
	require.NoError(t, repo.InsertUsed(ctx, conn, "Milk", base.Add(time.Hour), 0.5, "alice"))
	require.NoError(t, repo.InsertWasted(ctx, conn, "Milk", base.Add(2*time.Hour), 1))
	require.NoError(t, conn.Create(&purchasedomain.Purchase{
		ItemName:   "Milk",
		Timestamp:  base,
		Quantity:   4,
		Price:      7.98,
		Store:      "Corner Market",
		ParentName: "alice",
	}).Error)

	stats, err := svc.UsageStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	var milk domain.UsageStat
	for _, stat := range stats {
		if stat.ItemName == "Milk" {
			milk = stat
		}
	}
	assert.Equal(t, 2.0, milk.AmtUsed)
	assert.Equal(t, 1.0, milk.AmtWasted)
	assert.Equal(t, 7.98, milk.MoneySpent)

	// Items with no history still report zeroes.
	var bread domain.UsageStat
	for _, stat := range stats {
		if stat.ItemName == "Bread" {
			bread = stat
		}
	}
	assert.Zero(t, bread.AmtUsed)
	assert.Zero(t, bread.MoneySpent)
}
