// Package clock abstracts wall time so projections can be tested against a
// fixed "today".
package clock

import (
	"time"

	"go.uber.org/fx"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func NewSystem() Clock { return systemClock{} }

var Module = fx.Module("clock",
	fx.Provide(NewSystem),
)
