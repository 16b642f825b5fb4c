package domain

import (
	"time"

	catalogdomain "github.com/larderhq/larder/internal/catalog/domain"
	householddomain "github.com/larderhq/larder/internal/household/domain"
)

// Purchase is an immutable record of a buying event. The inventory addition
// it funds is written in the same transaction by the ledger.
type Purchase struct {
	ItemName   string    `gorm:"column:item_name;primaryKey" json:"item_name"`
	Timestamp  time.Time `gorm:"column:timestamp;primaryKey" json:"timestamp"`
	Quantity   float64   `gorm:"column:quantity;not null;check:chk_purchases_quantity,quantity > 0" json:"quantity"`
	Price      float64   `gorm:"column:price;not null" json:"price"`
	Store      string    `gorm:"column:store;not null" json:"store"`
	ParentName string    `gorm:"column:parent_name;not null" json:"parent_name"`

	ItemType catalogdomain.ItemType `gorm:"foreignKey:ItemName;references:Name" json:"-"`
	Parent   householddomain.Parent `gorm:"foreignKey:ParentName;references:Name" json:"-"`
}

func (Purchase) TableName() string { return "purchases" }

// PurchaseFilter narrows purchase listings.
type PurchaseFilter struct {
	ItemName string
	Store    string
	From     *time.Time
	To       *time.Time
}
