package mealplan

import (
	"github.com/larderhq/larder/internal/mealplan/repository"
	"github.com/larderhq/larder/internal/mealplan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mealplan.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
