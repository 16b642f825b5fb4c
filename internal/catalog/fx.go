package catalog

import (
	"github.com/larderhq/larder/internal/catalog/repository"
	"github.com/larderhq/larder/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
