package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/observability"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/server"
	"github.com/laminkinte/business-development-dashboard-sub000/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
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
