package service

import (
	"context"
	"strings"
	"time"

	"github.com/larderhq/larder/internal/recipe/domain"
	"github.com/larderhq/larder/pkg/apperr"
	"github.com/larderhq/larder/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("recipe.service"),
		repo: p.Repo,
	}
}

func (s *Service) AddRecipe(ctx context.Context, recipeName string, ingredients []domain.IngredientInput) (domain.RecipeWithIngredients, error) {
	recipeName = strings.TrimSpace(recipeName)
	if recipeName == "" {
		return domain.RecipeWithIngredients{}, apperr.Validation("recipe name is required")
	}
	if len(ingredients) == 0 {
		return domain.RecipeWithIngredients{}, apperr.Validation("a recipe needs at least one ingredient")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertTemplate(ctx, tx, recipeName); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return apperr.Duplicate("recipe already exists", err)
			}
			return apperr.Transaction("failed to create recipe", err)
		}
		if err := s.repo.InsertRecipe(ctx, tx, recipeName); err != nil {
			return apperr.Transaction("failed to create recipe", err)
		}
		if err := s.repo.InsertIngredients(ctx, tx, recipeName, ingredients); err != nil {
			if db.IsForeignKeyErr(err) {
				return apperr.Conflict("ingredient is not a registered food", err)
			}
			return apperr.Transaction("failed to create recipe", err)
		}
		return nil
	})
	if err != nil {
		return domain.RecipeWithIngredients{}, err
	}

	s.log.Info("recipe added",
		zap.String("recipe", recipeName),
		zap.Int("ingredients", len(ingredients)),
	)

	out := domain.RecipeWithIngredients{RecipeName: recipeName}
	for _, ing := range ingredients {
		out.Ingredients = append(out.Ingredients, domain.Ingredient{
			RecipeName: recipeName,
			FoodName:   ing.FoodName,
			Quantity:   ing.Quantity,
		})
	}
	return out, nil
}

func (s *Service) ListRecipes(ctx context.Context, pattern string) ([]domain.RecipeWithIngredients, error) {
	recipes, err := s.repo.ListRecipes(ctx, s.db, pattern)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RecipeWithIngredients, 0, len(recipes))
	for _, recipe := range recipes {
		ingredients, err := s.repo.IngredientsOf(ctx, s.db, recipe.RecipeName)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.RecipeWithIngredients{
			RecipeName:  recipe.RecipeName,
			Ingredients: ingredients,
		})
	}
	return out, nil
}

func (s *Service) DeleteRecipe(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.DeleteRecipe(ctx, tx, name)
		if err != nil {
			if db.IsForeignKeyErr(err) {
				return apperr.Conflict("recipe is still scheduled as a meal", err)
			}
			return apperr.Transaction("failed to delete recipe", err)
		}
		if affected == 0 {
			return apperr.NotFound("recipe does not exist")
		}
		return nil
	})
}

func (s *Service) ShoppingList(ctx context.Context, until time.Time) ([]domain.ShoppingItem, error) {
	if until.IsZero() {
		until = time.Now().UTC().Add(7 * 24 * time.Hour)
	}
	return s.repo.MissingIngredients(ctx, s.db, until)
}
