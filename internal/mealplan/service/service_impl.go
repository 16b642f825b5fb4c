package service

import (
	"context"
	"time"

	"github.com/larderhq/larder/internal/clock"
	historydomain "github.com/larderhq/larder/internal/history/domain"
	inventorydomain "github.com/larderhq/larder/internal/inventory/domain"
	"github.com/larderhq/larder/internal/mealplan/domain"
	recipedomain "github.com/larderhq/larder/internal/recipe/domain"
	"github.com/larderhq/larder/pkg/apperr"
	"github.com/larderhq/larder/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Repo      domain.Repository
	Recipes   recipedomain.Repository
	Inventory inventorydomain.Repository
	History   historydomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	repo      domain.Repository
	recipes   recipedomain.Repository
	inventory inventorydomain.Repository
	history   historydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("mealplan.service"),
		clock:     p.Clock,
		repo:      p.Repo,
		recipes:   p.Recipes,
		inventory: p.Inventory,
		history:   p.History,
	}
}

func (s *Service) ScheduleMeal(ctx context.Context, meal domain.Meal) (domain.Meal, error) {
	if meal.RecipeName == "" || meal.LocationName == "" {
		return domain.Meal{}, apperr.Validation("recipe and location are required")
	}
	if meal.Timestamp.IsZero() {
		return domain.Meal{}, apperr.Validation("meal timestamp is required")
	}
	meal.Timestamp = inventorydomain.TruncateTimestamp(meal.Timestamp)

	if err := s.repo.Insert(ctx, s.db, &meal); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Meal{}, apperr.Duplicate("meal already scheduled", err)
		}
		if db.IsForeignKeyErr(err) {
			return domain.Meal{}, apperr.Conflict("recipe or location does not exist", err)
		}
		return domain.Meal{}, err
	}
	return meal, nil
}

func (s *Service) ListMeals(ctx context.Context, filter domain.MealFilter) ([]domain.Meal, error) {
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) RemoveMeal(ctx context.Context, recipeName string, timestamp time.Time) error {
	affected, err := s.repo.Delete(ctx, s.db, recipeName, inventorydomain.TruncateTimestamp(timestamp))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("meal is not scheduled")
	}
	return nil
}

// ConsumeMeal walks the recipe's ingredients inside one transaction, writing
// directly through the inventory and history repositories so the whole meal
// is one atomic ledger event. Batches drain oldest first; each ingredient
// logs a single used record carrying the recipe's required quantity, matching
// the ledger's over-removal policy when stock runs short.
func (s *Service) ConsumeMeal(ctx context.Context, recipeName string, timestamp time.Time, user string) error {
	if user == "" {
		return apperr.Validation("user is required to consume a meal")
	}
	timestamp = inventorydomain.TruncateTimestamp(timestamp)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredients, err := s.recipes.IngredientsOf(ctx, tx, recipeName)
		if err != nil {
			return apperr.Transaction("failed to read recipe ingredients", err)
		}
		if len(ingredients) == 0 {
			return apperr.NotFound("recipe does not exist")
		}

		dateUsed := inventorydomain.TruncateTimestamp(s.clock.Now())
		for _, ingredient := range ingredients {
			if err := s.consumeIngredient(ctx, tx, ingredient); err != nil {
				return err
			}
			if err := s.history.InsertUsed(ctx, tx, ingredient.FoodName, dateUsed, ingredient.Quantity, user); err != nil {
				return apperr.Transaction("failed to log usage of item", err)
			}
		}

		affected, err := s.repo.Delete(ctx, tx, recipeName, timestamp)
		if err != nil {
			return apperr.Transaction("failed to remove meal", err)
		}
		if affected == 0 {
			return apperr.NotFound("meal is not scheduled")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("meal consumed",
		zap.String("recipe", recipeName),
		zap.Time("scheduled_for", timestamp),
		zap.String("user", user),
	)
	return nil
}

func (s *Service) consumeIngredient(ctx context.Context, tx *gorm.DB, ingredient recipedomain.Ingredient) error {
	batches, err := s.inventory.OldestBatches(ctx, tx, ingredient.FoodName)
	if err != nil {
		return apperr.Transaction("failed to read inventory", err)
	}
	if len(batches) == 0 {
		return apperr.NotFound("item not in inventory")
	}

	remaining := ingredient.Quantity
	for _, batch := range batches {
		if remaining <= 0 {
			break
		}
		key := inventorydomain.Key{
			ItemName:    batch.ItemName,
			StorageName: batch.StorageName,
			Timestamp:   batch.Timestamp,
		}
		if batch.Quantity > remaining {
			if _, err := s.inventory.UpdateQuantity(ctx, tx, key, batch.Quantity-remaining); err != nil {
				return apperr.Transaction("failed to update item quantity", err)
			}
			remaining = 0
		} else {
			if _, err := s.inventory.Delete(ctx, tx, key); err != nil {
				return apperr.Transaction("failed to delete item", err)
			}
			remaining -= batch.Quantity
		}
	}
	return nil
}
