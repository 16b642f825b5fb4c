package inventory

import (
	"github.com/larderhq/larder/internal/inventory/repository"
	"github.com/larderhq/larder/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
