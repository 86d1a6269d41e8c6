package order

import (
	"github.com/smallbiznis/storewatch/internal/config"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	"github.com/smallbiznis/storewatch/internal/order/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("order.service",
	fx.Provide(func(log *zap.Logger, cfg config.Config) orderdomain.Service {
		return service.NewService(log, cfg.DefaultLocale)
	}),
)
