// Package db opens the gorm database handle for the configured engine.
package db

import (
	"fmt"

	"github.com/gogsia86/farmers-market-sub007/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database engine.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		conn *gorm.DB
		err  error
	)
	switch cfg.Database.Driver {
	case "postgres":
		conn, err = gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	case "sqlite":
		conn, err = gorm.Open(sqlite.Open(cfg.Database.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	log.Named("db").Info("database connected", zap.String("driver", cfg.Database.Driver))
	return conn, nil
}

// Module provides the *gorm.DB to the fx graph.
var Module = fx.Module("db",
	fx.Provide(Open),
)
