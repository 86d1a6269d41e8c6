package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/storewatch/internal/session"
)

func (s *Server) MethodSummary(c *gin.Context) {
	state := session.FromContext(c)
	orders, ok := s.annotated(state)
	if !ok {
		AbortWithError(c, ErrNoDataset)
		return
	}

	done := s.metrics.TimeReport("methods")
	summary := s.reportSvc.ByMethod(orders)
	done()

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func (s *Server) DailySales(c *gin.Context) {
	state := session.FromContext(c)
	orders, _, _, loaded := state.Dataset()
	if !loaded {
		AbortWithError(c, ErrNoDataset)
		return
	}

	done := s.metrics.TimeReport("daily")
	daily := s.reportSvc.Daily(orders)
	done()

	c.JSON(http.StatusOK, gin.H{"data": daily})
}

func (s *Server) TopProducts(c *gin.Context) {
	state := session.FromContext(c)
	orders, _, _, loaded := state.Dataset()
	if !loaded {
		AbortWithError(c, ErrNoDataset)
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		limit = n
	}

	done := s.metrics.TimeReport("top_products")
	top := s.reportSvc.TopProducts(orders, limit)
	done()

	c.JSON(http.StatusOK, gin.H{"data": top})
}
