package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, meal *Meal) error
	List(ctx context.Context, db *gorm.DB, filter MealFilter) ([]Meal, error)
	Delete(ctx context.Context, db *gorm.DB, recipeName string, timestamp time.Time) (int64, error)
}

type Service interface {
	ScheduleMeal(ctx context.Context, meal Meal) (Meal, error)
	ListMeals(ctx context.Context, filter MealFilter) ([]Meal, error)
	RemoveMeal(ctx context.Context, recipeName string, timestamp time.Time) error

	// ConsumeMeal consumes each ingredient of the scheduled recipe from
	// inventory, oldest batches first, logs the usage under user, and
	// removes the schedule entry, all in one transaction.
	ConsumeMeal(ctx context.Context, recipeName string, timestamp time.Time, user string) error
}
