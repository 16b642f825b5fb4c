package domain

import (
	"time"

	catalogdomain "github.com/larderhq/larder/internal/catalog/domain"
)

// InventoryRecord is one batch of an item in a storage location. The
// creation timestamp is part of the key so batches of the same item bought at
// different times coexist. Quantity stays strictly positive for as long as
// the row exists; a decrement to zero or below deletes it.
type InventoryRecord struct {
	ItemName    string     `gorm:"column:item_name;primaryKey" json:"item_name"`
	StorageName string     `gorm:"column:storage_name;primaryKey" json:"storage_name"`
	Timestamp   time.Time  `gorm:"column:timestamp;primaryKey" json:"timestamp"`
	Quantity    float64    `gorm:"column:quantity;not null;check:chk_inventory_quantity,quantity >= 0" json:"quantity"`
	Expiry      *time.Time `gorm:"column:expiry" json:"expiry,omitempty"`

	// The storage foreign key is declared from the storage side; declaring
	// it here would resolve has-one and invert the constraint.
	ItemType catalogdomain.ItemType `gorm:"foreignKey:ItemName;references:Name" json:"-"`
}

func (InventoryRecord) TableName() string { return "inventory" }

// Key identifies one inventory batch.
type Key struct {
	ItemName    string    `json:"item_name"`
	StorageName string    `json:"storage_name"`
	Timestamp   time.Time `json:"timestamp"`
}

// Filter narrows inventory listings. Name fields are substring matches;
// IncludeNonPerishable keeps rows without an expiry when an expiry range is
// given.
type Filter struct {
	ItemName             string
	StorageName          string
	ExpiryFrom           *time.Time
	ExpiryTo             *time.Time
	IncludeNonPerishable bool
}

type AddRequest struct {
	ItemName    string     `json:"item_name"`
	StorageName string     `json:"storage_name"`
	Expiry      *time.Time `json:"expiry,omitempty"`
	Quantity    float64    `json:"quantity"`
}

type PurchaseRequest struct {
	ItemName        string     `json:"item_name"`
	Quantity        float64    `json:"quantity"`
	Price           float64    `json:"price"`
	Store           string     `json:"store"`
	ParentName      string     `json:"parent_name"`
	StorageLocation string     `json:"storage_location"`
	Expiry          *time.Time `json:"expiry,omitempty"`
}
