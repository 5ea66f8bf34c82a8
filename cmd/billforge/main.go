package main

import (
	"github.com/billforge/billforge/internal/client"
	"github.com/billforge/billforge/internal/clock"
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/invoice"
	"github.com/billforge/billforge/internal/metrics"
	"github.com/billforge/billforge/internal/migration"
	"github.com/billforge/billforge/internal/sequence"
	"github.com/billforge/billforge/internal/server"
	"github.com/billforge/billforge/internal/tenant"
	"github.com/billforge/billforge/pkg/db"
	"github.com/billforge/billforge/pkg/log"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		tenant.Module,
		client.Module,
		sequence.Module,
		invoice.Module,

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
