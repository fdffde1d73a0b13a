package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gogsia86/farmers-market-sub007/internal/clock"
	"github.com/gogsia86/farmers-market-sub007/internal/config"
	"github.com/gogsia86/farmers-market-sub007/internal/events"
	"github.com/gogsia86/farmers-market-sub007/internal/logger"
	"github.com/gogsia86/farmers-market-sub007/internal/migration"
	"github.com/gogsia86/farmers-market-sub007/internal/order"
	"github.com/gogsia86/farmers-market-sub007/internal/seed"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/monitor"
	"github.com/gogsia86/farmers-market-sub007/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		fx.Provide(events.NewOutbox),
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if !cfg.IsProduction() && cfg.Bootstrap.SeedDemoData {
				return seed.EnsureDemoData(conn)
			}
			return nil
		}),
		order.Module,
		segmentation.Module,
		monitor.Module,
	)
	app.Run()
}
