package domain

import (
	"time"

	catalogdomain "github.com/larderhq/larder/internal/catalog/domain"
	householddomain "github.com/larderhq/larder/internal/household/domain"
)

// History is an immutable log entry for a quantity removed from inventory.
// Rows are append-only; nothing updates or deletes them.
type History struct {
	ItemName string    `gorm:"column:item_name;primaryKey" json:"item_name"`
	DateUsed time.Time `gorm:"column:date_used;primaryKey" json:"date_used"`
	Quantity float64   `gorm:"column:quantity;not null;check:chk_history_quantity,quantity > 0" json:"quantity"`

	// Tag relations are declared parent-side so the composite foreign key
	// lands on the tag table.
	ItemType  catalogdomain.ItemType `gorm:"foreignKey:ItemName;references:Name" json:"-"`
	UsedTag   *Used                  `gorm:"foreignKey:ItemName,DateUsed;references:ItemName,DateUsed" json:"-"`
	WastedTag *Wasted                `gorm:"foreignKey:ItemName,DateUsed;references:ItemName,DateUsed" json:"-"`
}

func (History) TableName() string { return "history" }

// Used tags a history row as consumed by a user.
type Used struct {
	ItemName string    `gorm:"column:item_name;primaryKey" json:"item_name"`
	DateUsed time.Time `gorm:"column:date_used;primaryKey" json:"date_used"`
	UserName string    `gorm:"column:user_name" json:"user_name"`

	User householddomain.User `gorm:"foreignKey:UserName;references:Name" json:"-"`
}

func (Used) TableName() string { return "used" }

// Wasted tags a history row as thrown out.
type Wasted struct {
	ItemName string    `gorm:"column:item_name;primaryKey" json:"item_name"`
	DateUsed time.Time `gorm:"column:date_used;primaryKey" json:"date_used"`
}

func (Wasted) TableName() string { return "wasted" }

// RecordKind discriminates the history tagged union.
type RecordKind string

const (
	RecordUsed   RecordKind = "used"
	RecordWasted RecordKind = "wasted"
)

// Record is a history row joined with its tag. User is set only for used
// records; the union is enforced here rather than by the schema.
type Record struct {
	ItemName string     `json:"item_name"`
	DateUsed time.Time  `json:"date_used"`
	Quantity float64    `json:"quantity"`
	Kind     RecordKind `json:"kind"`
	User     string     `json:"user,omitempty"`
}

// UsageStat aggregates history and spend per item for the analytics view.
type UsageStat struct {
	ItemName   string  `json:"item_name"`
	Unit       string  `json:"unit"`
	AmtUsed    float64 `json:"amt_used"`
	AmtWasted  float64 `json:"amt_wasted"`
	MoneySpent float64 `json:"money_spent"`
}
