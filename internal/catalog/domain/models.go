package domain

// ItemType is a catalog entry identifying a kind of tracked good.
// Unit is the display unit ("L", "g", ...), empty for counted goods.
//
// The tag tables share the item type's primary key, so their relations are
// declared here on the parent side. Gorm resolves a tagged association as
// has-one before belongs-to whenever the foreign key name exists on both
// structs, and only the parent-side declaration puts the foreign key on the
// tag table.
type ItemType struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
	Unit string `gorm:"column:unit;size:16" json:"unit"`

	Consumable *Consumable `gorm:"foreignKey:Name;references:Name" json:"-"`
	Durable    *Durable    `gorm:"foreignKey:Name;references:Name" json:"-"`
}

func (ItemType) TableName() string { return "item_types" }

// ItemKind tags an item type in one of the subtype tables. The subtype
// hierarchy is ItemType -> {Consumable -> {Food, NotFood}, Durable}; a tag is
// a row referencing the same name and carries no behavior.
type ItemKind string

const (
	KindConsumable ItemKind = "consumable"
	KindDurable    ItemKind = "durable"
	KindFood       ItemKind = "food"
	KindNotFood    ItemKind = "notfood"
)

type Consumable struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`

	Food    *Food    `gorm:"foreignKey:Name;references:Name" json:"-"`
	NotFood *NotFood `gorm:"foreignKey:Name;references:Name" json:"-"`
}

func (Consumable) TableName() string { return "consumables" }

type Durable struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
}

func (Durable) TableName() string { return "durables" }

type Food struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
}

func (Food) TableName() string { return "foods" }

type NotFood struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
}

func (NotFood) TableName() string { return "not_foods" }
