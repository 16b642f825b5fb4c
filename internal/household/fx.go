package household

import (
	"github.com/larderhq/larder/internal/household/repository"
	"github.com/larderhq/larder/internal/household/service"
	"go.uber.org/fx"
)

var Module = fx.Module("household.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
