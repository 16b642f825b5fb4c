package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, purchase *Purchase) error
	List(ctx context.Context, db *gorm.DB, filter PurchaseFilter) ([]Purchase, error)
}

// Service is the read side of the purchase log; purchases are created only
// through the ledger's PurchaseItem so the log stays atomic with inventory.
type Service interface {
	ListPurchases(ctx context.Context, filter PurchaseFilter) ([]Purchase, error)
}
