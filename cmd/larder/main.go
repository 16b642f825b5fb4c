package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/larderhq/larder/internal/clock"
	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/migration"
	"github.com/larderhq/larder/internal/server"
	"github.com/larderhq/larder/pkg/db"
	"github.com/larderhq/larder/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
