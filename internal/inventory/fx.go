package inventory

import (
	"github.com/smallbiznis/storewatch/internal/config"
	inventorydomain "github.com/smallbiznis/storewatch/internal/inventory/domain"
	"github.com/smallbiznis/storewatch/internal/inventory/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("inventory.service",
	fx.Provide(func(log *zap.Logger, cfg config.Config) inventorydomain.Service {
		return service.NewService(log, cfg.DefaultLocale)
	}),
)
