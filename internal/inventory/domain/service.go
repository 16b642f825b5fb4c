package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository persists inventory batches. Every call runs on the session it is
// given; the ledger service owns transaction boundaries.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *InventoryRecord) error
	// FindForUpdate reads a batch under a row lock on engines that support
	// one. Returns nil when the batch does not exist.
	FindForUpdate(ctx context.Context, db *gorm.DB, key Key) (*InventoryRecord, error)
	Find(ctx context.Context, db *gorm.DB, key Key) (*InventoryRecord, error)
	UpdateQuantity(ctx context.Context, db *gorm.DB, key Key, quantity float64) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, key Key) (int64, error)
	Move(ctx context.Context, db *gorm.DB, key Key, newStorageName string) (int64, error)
	List(ctx context.Context, db *gorm.DB, filter Filter) ([]InventoryRecord, error)
	// OldestBatches returns the batches holding itemName ordered oldest
	// first, locked for update where supported.
	OldestBatches(ctx context.Context, db *gorm.DB, itemName string) ([]InventoryRecord, error)
}

// Service is the inventory ledger: every quantity change is atomic with the
// log entry that explains it.
type Service interface {
	// AddItemToInventory creates a batch keyed by the current clock time.
	// The item type must already be registered.
	AddItemToInventory(ctx context.Context, req AddRequest) (InventoryRecord, error)

	// PurchaseItem records a purchase and adds the bought quantity to
	// inventory in one transaction.
	PurchaseItem(ctx context.Context, req PurchaseRequest) (InventoryRecord, error)

	// ConsumeInventory removes quantity from a batch and logs a used record
	// for user. ThrowOutInventory does the same without a user, logging a
	// wasted record. Both share the remove-and-log transaction: the batch is
	// deleted when its quantity is exhausted, and the log entry always
	// carries the requested quantity even when that exceeds what was held.
	ConsumeInventory(ctx context.Context, key Key, quantity float64, user string) error
	ThrowOutInventory(ctx context.Context, key Key, quantity float64) error

	// MoveItemStorageLocation re-keys a batch to another storage, preserving
	// quantity, expiry and original timestamp.
	MoveItemStorageLocation(ctx context.Context, key Key, newStorageName string) error

	// ChangeItemQuantity overwrites a batch's quantity. It does not reject
	// non-positive values; removal must go through ConsumeInventory or
	// ThrowOutInventory so the history log stays complete.
	ChangeItemQuantity(ctx context.Context, key Key, newQuantity float64) error

	GetQuantity(ctx context.Context, key Key) (float64, error)
	ViewInventory(ctx context.Context, filter Filter) ([]InventoryRecord, error)
}

// TruncateTimestamp normalizes a batch timestamp to the schema's DATETIME
// resolution so keys compare stably across dialects.
func TruncateTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
