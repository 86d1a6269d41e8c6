package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/smallbiznis/storewatch/internal/clock"
	"github.com/smallbiznis/storewatch/internal/config"
	"github.com/smallbiznis/storewatch/internal/fees"
	"github.com/smallbiznis/storewatch/internal/inventory"
	"github.com/smallbiznis/storewatch/internal/logger"
	"github.com/smallbiznis/storewatch/internal/metrics"
	"github.com/smallbiznis/storewatch/internal/migration"
	"github.com/smallbiznis/storewatch/internal/order"
	"github.com/smallbiznis/storewatch/internal/reconciliation"
	"github.com/smallbiznis/storewatch/internal/report"
	"github.com/smallbiznis/storewatch/internal/server"
	"github.com/smallbiznis/storewatch/internal/session"
	"github.com/smallbiznis/storewatch/internal/settings"
	"github.com/smallbiznis/storewatch/internal/storefront/storefrontfx"
	"github.com/smallbiznis/storewatch/internal/velocity"
	"github.com/smallbiznis/storewatch/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		metrics.Module,
		clock.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,

		// Domain services
		order.Module,
		fees.Module,
		reconciliation.Module,
		inventory.Module,
		velocity.Module,
		report.Module,
		settings.Module,
		storefrontfx.Module,
		session.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
