package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	mealplandomain "github.com/larderhq/larder/internal/mealplan/domain"
	"github.com/larderhq/larder/pkg/apperr"
)

type scheduleMealRequest struct {
	RecipeName   string    `json:"recipe_name"`
	Timestamp    time.Time `json:"timestamp"`
	LocationName string    `json:"location_name"`
	MealType     string    `json:"meal_type,omitempty"`
}

type consumeMealRequest struct {
	RecipeName string    `json:"recipe_name"`
	Timestamp  time.Time `json:"timestamp"`
	User       string    `json:"user"`
}

type removeMealRequest struct {
	RecipeName string    `json:"recipe_name"`
	Timestamp  time.Time `json:"timestamp"`
}

func (s *Server) ScheduleMeal(c *gin.Context) {
	var req scheduleMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	meal, err := s.mealplanSvc.ScheduleMeal(c.Request.Context(), mealplandomain.Meal{
		RecipeName:   strings.TrimSpace(req.RecipeName),
		Timestamp:    req.Timestamp,
		LocationName: strings.TrimSpace(req.LocationName),
		MealType:     strings.TrimSpace(req.MealType),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, meal)
}

func (s *Server) ListMeals(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid from"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid to"))
		return
	}

	meals, err := s.mealplanSvc.ListMeals(c.Request.Context(), mealplandomain.MealFilter{
		RecipeName:   strings.TrimSpace(c.Query("recipe_name")),
		LocationName: strings.TrimSpace(c.Query("location_name")),
		MealType:     strings.TrimSpace(c.Query("meal_type")),
		From:         from,
		To:           to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, meals)
}

func (s *Server) ConsumeMeal(c *gin.Context) {
	var req consumeMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.User) == "" {
		AbortWithError(c, apperr.Validation("user is required to consume a meal"))
		return
	}

	if err := s.mealplanSvc.ConsumeMeal(c.Request.Context(), strings.TrimSpace(req.RecipeName), req.Timestamp, strings.TrimSpace(req.User)); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}

func (s *Server) RemoveMeal(c *gin.Context) {
	var req removeMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.mealplanSvc.RemoveMeal(c.Request.Context(), strings.TrimSpace(req.RecipeName), req.Timestamp); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}
