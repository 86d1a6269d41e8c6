package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/storewatch/internal/export"
	"github.com/smallbiznis/storewatch/internal/session"
)

// ExportReport streams one report as CSV. Report names mirror the API
// surface: orders, methods, reconciliation, orphans, velocity, stock.
func (s *Server) ExportReport(c *gin.Context) {
	state := session.FromContext(c)

	var table export.Table
	switch report := c.Param("report"); report {
	case "orders":
		orders, ok := s.annotated(state)
		if !ok {
			AbortWithError(c, ErrNoDataset)
			return
		}
		table = export.Orders(orders)
	case "methods":
		orders, ok := s.annotated(state)
		if !ok {
			AbortWithError(c, ErrNoDataset)
			return
		}
		table = export.Methods(s.reportSvc.ByMethod(orders))
	case "reconciliation":
		rep, ok := s.reconcile(state)
		if !ok {
			AbortWithError(c, ErrNoDataset)
			return
		}
		table = export.Reconciliation(rep.Records)
	case "orphans":
		rep, ok := s.reconcile(state)
		if !ok {
			AbortWithError(c, ErrNoDataset)
			return
		}
		table = export.Orphans(rep.Orphans)
	case "velocity":
		orders, _, days, loaded := state.Dataset()
		if !loaded {
			AbortWithError(c, ErrNoDataset)
			return
		}
		records := s.velocitySvc.Compute(orders, s.stockLevels(state), days, s.clock.Now(), state.VelocityParams())
		table = export.Velocity(records)
	case "stock":
		rows, loaded := state.Stock()
		if !loaded {
			AbortWithError(c, ErrNoDataset)
			return
		}
		table = export.Stock(rows)
	default:
		AbortWithError(c, ErrNotFound)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", c.Param("report")))
	c.Status(http.StatusOK)
	if err := table.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
