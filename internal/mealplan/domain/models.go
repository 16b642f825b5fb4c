package domain

import (
	"time"

	storagedomain "github.com/larderhq/larder/internal/storage/domain"
)

// Meal schedules a recipe at a location for a point in time.
type Meal struct {
	RecipeName   string    `gorm:"column:recipe_name;primaryKey" json:"recipe_name"`
	Timestamp    time.Time `gorm:"column:timestamp;primaryKey" json:"timestamp"`
	LocationName string    `gorm:"column:location_name;primaryKey" json:"location_name"`
	MealType     string    `gorm:"column:meal_type;size:31" json:"meal_type"`

	// The recipe foreign key is declared from the recipe side; declaring
	// it here would resolve has-one and invert the constraint.
	Location storagedomain.Location `gorm:"foreignKey:LocationName;references:Name" json:"-"`
}

func (Meal) TableName() string { return "meal_schedule" }

// MealFilter narrows meal listings.
type MealFilter struct {
	RecipeName   string
	LocationName string
	MealType     string
	From         *time.Time
	To           *time.Time
}
