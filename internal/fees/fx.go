package fees

import (
	"github.com/smallbiznis/storewatch/internal/fees/service"
	"go.uber.org/fx"
)

var Module = fx.Module("fees.service",
	fx.Provide(service.NewService),
)
