package purchase

import (
	"github.com/larderhq/larder/internal/purchase/repository"
	"github.com/larderhq/larder/internal/purchase/service"
	"go.uber.org/fx"
)

var Module = fx.Module("purchase.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
