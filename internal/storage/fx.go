package storage

import (
	"github.com/larderhq/larder/internal/storage/repository"
	"github.com/larderhq/larder/internal/storage/service"
	"go.uber.org/fx"
)

var Module = fx.Module("storage.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
