package storefrontfx

import (
	"github.com/smallbiznis/storewatch/internal/config"
	"github.com/smallbiznis/storewatch/internal/metrics"
	"github.com/smallbiznis/storewatch/internal/storefront"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("storefront.client",
	fx.Provide(func(cfg config.Config, log *zap.Logger, m *metrics.Metrics) *storefront.Client {
		return storefront.NewClient(cfg.ShopwireURL, cfg.ShopwireStoreID, cfg.ShopwireToken, cfg.ShopwireContact, log, m)
	}),
)
