package domain

import (
	inventorydomain "github.com/larderhq/larder/internal/inventory/domain"
)

// Location is a place in the household that can hold storages.
type Location struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
}

func (Location) TableName() string { return "locations" }

// Storage is a physical holding location for inventory.
// Capacity is a utilization fraction; the schema admits [0,2].
type Storage struct {
	StorageName  string  `gorm:"column:storage_name;primaryKey" json:"storage_name"`
	LocationName string  `gorm:"column:location_name;not null" json:"location_name"`
	Capacity     float64 `gorm:"column:capacity;not null;default:0;check:chk_storages_capacity,capacity >= 0 AND capacity <= 2" json:"capacity"`

	Location Location                          `gorm:"foreignKey:LocationName;references:Name" json:"-"`
	Records  []inventorydomain.InventoryRecord `gorm:"foreignKey:StorageName;references:StorageName" json:"-"`
}

func (Storage) TableName() string { return "storages" }

// StorageKind tags a storage row in one of the subtype tables.
type StorageKind string

const (
	KindDry       StorageKind = "dry"
	KindAppliance StorageKind = "appliance"
	KindFridge    StorageKind = "fridge"
	KindFreezer   StorageKind = "freezer"
)

// DryStorage, Appliance, Fridge and Freezer are pure tagging relations over
// Storage; membership carries no attributes.
type DryStorage struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`

	Storage Storage `gorm:"foreignKey:Name;references:StorageName" json:"-"`
}

func (DryStorage) TableName() string { return "dry_storages" }

// Appliance shares its key with Fridge and Freezer; those relations are
// declared here parent-side so the foreign key lands on the subtype table.
type Appliance struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`

	Storage Storage  `gorm:"foreignKey:Name;references:StorageName" json:"-"`
	Fridge  *Fridge  `gorm:"foreignKey:Name;references:Name" json:"-"`
	Freezer *Freezer `gorm:"foreignKey:Name;references:Name" json:"-"`
}

func (Appliance) TableName() string { return "appliances" }

type Fridge struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
}

func (Fridge) TableName() string { return "fridges" }

type Freezer struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
}

func (Freezer) TableName() string { return "freezers" }

// StorageFilter narrows storage listings.
type StorageFilter struct {
	StorageName  string
	LocationName string
	CapacityLow  float64
	CapacityHigh float64
	Kind         StorageKind
}
