package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists item types and their subtype tags.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, itemType *ItemType) error
	Find(ctx context.Context, db *gorm.DB, name string) (*ItemType, error)
	List(ctx context.Context, db *gorm.DB, namePattern, unitPattern string) ([]ItemType, error)

	Tag(ctx context.Context, db *gorm.DB, kind ItemKind, name string) error
	Tagged(ctx context.Context, db *gorm.DB, kind ItemKind, name string) (bool, error)
	ListTagged(ctx context.Context, db *gorm.DB, kind ItemKind, namePattern, unitPattern string) ([]ItemType, error)
}

type AddItemTypeRequest struct {
	Name string   `json:"name"`
	Unit string   `json:"unit"`
	Kind ItemKind `json:"kind,omitempty"`
}

// Service manages the item-type catalog. Adding a tagged type creates the
// missing parent tags on the way down (a food is also a consumable).
type Service interface {
	AddItemType(ctx context.Context, req AddItemTypeRequest) (ItemType, error)
	ListItemTypes(ctx context.Context, namePattern, unitPattern string) ([]ItemType, error)
	ListByKind(ctx context.Context, kind ItemKind, namePattern, unitPattern string) ([]ItemType, error)
}
