// Package logger provides the shared zap logger.
package logger

import (
	"github.com/gogsia86/farmers-market-sub007/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New builds a zap logger appropriate for the configured environment.
func New(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Module provides the *zap.Logger to the fx graph.
var Module = fx.Module("logger",
	fx.Provide(New),
)
