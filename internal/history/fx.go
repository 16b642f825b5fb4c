package history

import (
	"github.com/larderhq/larder/internal/history/repository"
	"github.com/larderhq/larder/internal/history/service"
	"go.uber.org/fx"
)

var Module = fx.Module("history.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
