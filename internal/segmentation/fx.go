package segmentation

import (
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("segmentation.service",
	fx.Provide(service.NewService),
)
