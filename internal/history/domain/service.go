package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository appends and reads history rows. InsertUsed and InsertWasted
// write the history row and its tag on the session they are given, so a
// caller's transaction covers both.
type Repository interface {
	InsertUsed(ctx context.Context, db *gorm.DB, itemName string, dateUsed time.Time, quantity float64, user string) error
	InsertWasted(ctx context.Context, db *gorm.DB, itemName string, dateUsed time.Time, quantity float64) error

	List(ctx context.Context, db *gorm.DB, itemPattern string, from, to *time.Time) ([]Record, error)
	UsageStats(ctx context.Context, db *gorm.DB) ([]UsageStat, error)
}

// Service exposes the read side; writes happen only through the inventory
// ledger's remove-and-log path.
type Service interface {
	ListRecords(ctx context.Context, itemPattern string, from, to *time.Time) ([]Record, error)
	UsageStats(ctx context.Context) ([]UsageStat, error)
}
