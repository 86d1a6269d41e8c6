package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smallbiznis/storewatch/internal/session"
)

// RefreshStock pulls a fresh stock snapshot from the storefront into the
// session. Velocity projections use the snapshot current at query time.
func (s *Server) RefreshStock(c *gin.Context) {
	raw, err := s.store.Products(c.Request.Context())
	if err != nil {
		s.log.Warn("product retrieval failed", zap.Error(err))
		AbortWithError(c, ErrUpstream)
		return
	}

	rows := s.inventorySvc.Normalize(raw)
	state := session.FromContext(c)
	state.SetStock(rows)

	c.JSON(http.StatusOK, gin.H{"data": s.inventorySvc.Summarize(rows)})
}

func (s *Server) ListStock(c *gin.Context) {
	state := session.FromContext(c)
	rows, loaded := state.Stock()
	if !loaded {
		AbortWithError(c, ErrNoDataset)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) ListStockAlerts(c *gin.Context) {
	state := session.FromContext(c)
	rows, loaded := state.Stock()
	if !loaded {
		AbortWithError(c, ErrNoDataset)
		return
	}

	threshold := 5.0
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		threshold = v
	}

	c.JSON(http.StatusOK, gin.H{"data": s.inventorySvc.Alerts(rows, threshold)})
}

func (s *Server) StockSummary(c *gin.Context) {
	state := session.FromContext(c)
	rows, loaded := state.Stock()
	if !loaded {
		AbortWithError(c, ErrNoDataset)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.inventorySvc.Summarize(rows)})
}
