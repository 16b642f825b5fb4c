package recipe

import (
	"github.com/larderhq/larder/internal/recipe/repository"
	"github.com/larderhq/larder/internal/recipe/service"
	"go.uber.org/fx"
)

var Module = fx.Module("recipe.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
