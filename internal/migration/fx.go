// Package migration creates the operator-configuration tables on startup
// so a fresh install is usable out of the box. The store is a single
// embedded sqlite file; gorm's AutoMigrate is all the schema management it
// needs.
package migration

import (
	settingsdomain "github.com/smallbiznis/storewatch/internal/settings/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		return conn.AutoMigrate(
			&settingsdomain.Setting{},
			&settingsdomain.ProductCost{},
			&settingsdomain.CashOverride{},
		)
	}),
)
