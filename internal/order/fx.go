package order

import (
	"github.com/gogsia86/farmers-market-sub007/internal/order/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("order.repository",
	fx.Provide(repository.NewRepository),
)
