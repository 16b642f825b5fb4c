package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	recipedomain "github.com/larderhq/larder/internal/recipe/domain"
	"github.com/larderhq/larder/pkg/apperr"
)

type addRecipeRequest struct {
	Name        string                         `json:"name"`
	Ingredients []recipedomain.IngredientInput `json:"ingredients"`
}

func (s *Server) AddRecipe(c *gin.Context) {
	var req addRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	recipe, err := s.recipeSvc.AddRecipe(c.Request.Context(), strings.TrimSpace(req.Name), req.Ingredients)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, recipe)
}

func (s *Server) ListRecipes(c *gin.Context) {
	recipes, err := s.recipeSvc.ListRecipes(c.Request.Context(), strings.TrimSpace(c.Query("name")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, recipes)
}

func (s *Server) DeleteRecipe(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if err := s.recipeSvc.DeleteRecipe(c.Request.Context(), name); err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, nil)
}

func (s *Server) ShoppingList(c *gin.Context) {
	until, err := parseOptionalTime(c.Query("until"), true)
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid until"))
		return
	}
	if until == nil {
		until = new(time.Time)
	}

	items, err := s.recipeSvc.ShoppingList(c.Request.Context(), *until)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, items)
}
