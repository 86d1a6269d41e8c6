package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/storewatch/internal/config"
	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
	reportdomain "github.com/smallbiznis/storewatch/internal/report/domain"
	"github.com/smallbiznis/storewatch/internal/session"
)

// FinancialSummary builds the period result decomposition using the
// session's schedule and what-if inputs. Adjusting either and re-reading
// recomputes everything without touching the storefront.
func (s *Server) FinancialSummary(c *gin.Context) {
	state := session.FromContext(c)
	orders, ok := s.annotated(state)
	if !ok {
		AbortWithError(c, ErrNoDataset)
		return
	}

	settings := state.Settings()
	done := s.metrics.TimeReport("financial")
	summary := s.reportSvc.Financial(orders, reportdomain.WhatIf{
		ExchangeRate: settings.ExchangeRate,
		TaxPct:       settings.TaxPct,
		AdSpend:      settings.AdSpend,
	})
	done()

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func (s *Server) GetSchedule(c *gin.Context) {
	state := session.FromContext(c)
	c.JSON(http.StatusOK, gin.H{"data": state.Schedule()})
}

// UpdateSchedule replaces the session's fee schedule. The change is session
// scoped; the configured defaults are untouched.
func (s *Server) UpdateSchedule(c *gin.Context) {
	var schedule feesdomain.Schedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err := config.ValidateSchedule(schedule); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	state := session.FromContext(c)
	state.SetSchedule(schedule)
	c.JSON(http.StatusOK, gin.H{"data": schedule})
}

// ResetSchedule restores the configured default schedule for the session.
func (s *Server) ResetSchedule(c *gin.Context) {
	state := session.FromContext(c)
	schedule := s.feeConfig.Get()
	state.SetSchedule(schedule)
	c.JSON(http.StatusOK, gin.H{"data": schedule})
}
