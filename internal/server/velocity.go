package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inventorydomain "github.com/smallbiznis/storewatch/internal/inventory/domain"
	"github.com/smallbiznis/storewatch/internal/session"
)

// GetVelocity computes per-product sales velocity and restock projections
// for the loaded period. A stock snapshot is optional; without one every
// projection field reads undefined.
func (s *Server) GetVelocity(c *gin.Context) {
	state := session.FromContext(c)
	orders, _, days, loaded := state.Dataset()
	if !loaded {
		AbortWithError(c, ErrNoDataset)
		return
	}

	done := s.metrics.TimeReport("velocity")
	records := s.velocitySvc.Compute(orders, s.stockLevels(state), days, s.clock.Now(), state.VelocityParams())
	done()

	c.JSON(http.StatusOK, gin.H{"data": records})
}

// stockLevels aggregates the session's snapshot, or nil without one.
func (s *Server) stockLevels(state *session.State) map[string]inventorydomain.Level {
	rows, ok := state.Stock()
	if !ok {
		return nil
	}
	return s.inventorySvc.Levels(rows)
}
