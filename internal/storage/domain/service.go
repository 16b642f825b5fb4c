package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists locations, storages and their subtype tags. Every call
// receives the session it must run on so services own transaction scope.
type Repository interface {
	InsertLocation(ctx context.Context, db *gorm.DB, location *Location) error
	DeleteLocation(ctx context.Context, db *gorm.DB, name string) (int64, error)
	ListLocations(ctx context.Context, db *gorm.DB, pattern string) ([]Location, error)

	InsertStorage(ctx context.Context, db *gorm.DB, storage *Storage) error
	DeleteStorage(ctx context.Context, db *gorm.DB, name string) (int64, error)
	FindStorage(ctx context.Context, db *gorm.DB, name string) (*Storage, error)
	ListStorages(ctx context.Context, db *gorm.DB, filter StorageFilter) ([]Storage, error)

	TagStorage(ctx context.Context, db *gorm.DB, kind StorageKind, name string) error
	UntagStorage(ctx context.Context, db *gorm.DB, kind StorageKind, name string) (int64, error)
	TaggedStorages(ctx context.Context, db *gorm.DB, kind StorageKind) ([]string, error)
}

type AddStorageRequest struct {
	StorageName  string      `json:"storage_name"`
	LocationName string      `json:"location_name"`
	Capacity     float64     `json:"capacity"`
	Kind         StorageKind `json:"kind,omitempty"`
}

// Service manages the storage topology of the household.
type Service interface {
	AddLocation(ctx context.Context, name string) (Location, error)
	DeleteLocation(ctx context.Context, name string) error
	ListLocations(ctx context.Context, pattern string) ([]Location, error)

	// AddStorage creates a storage and, when req.Kind is set, its subtype tag
	// chain (fridge and freezer imply appliance).
	AddStorage(ctx context.Context, req AddStorageRequest) (Storage, error)
	DeleteStorage(ctx context.Context, name string) error
	ListStorages(ctx context.Context, filter StorageFilter) ([]Storage, error)
}
