package velocity

import (
	"github.com/smallbiznis/storewatch/internal/velocity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("velocity.service",
	fx.Provide(service.NewService),
)
