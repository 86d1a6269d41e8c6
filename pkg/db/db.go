// Package db opens the embedded sqlite store holding operator-saved
// configuration. Nothing computed is persisted here; reports are always
// rebuilt from the raw feeds.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storewatch/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Open(cfg config.Config) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

var Module = fx.Module("db",
	fx.Provide(Open),
)
