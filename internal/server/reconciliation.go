package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	recdomain "github.com/smallbiznis/storewatch/internal/reconciliation/domain"
	"github.com/smallbiznis/storewatch/internal/session"
)

func (s *Server) reconcile(state *session.State) (recdomain.Report, bool) {
	orders, txs, _, loaded := state.Dataset()
	if !loaded {
		return recdomain.Report{}, false
	}
	done := s.metrics.TimeReport("reconciliation")
	report := s.reconcileSvc.Reconcile(orders, txs, state.Overrides())
	done()
	return report, true
}

func (s *Server) GetReconciliation(c *gin.Context) {
	state := session.FromContext(c)
	report, ok := s.reconcile(state)
	if !ok {
		AbortWithError(c, ErrNoDataset)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (s *Server) ListOrphans(c *gin.Context) {
	state := session.FromContext(c)
	report, ok := s.reconcile(state)
	if !ok {
		AbortWithError(c, ErrNoDataset)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report.Orphans})
}

// SetOverride marks an order as collected in cash. Idempotent; the next
// reconciliation read reflects it.
func (s *Server) SetOverride(c *gin.Context) {
	state := session.FromContext(c)
	orderID := strings.TrimSpace(c.Param("orderId"))
	if orderID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.knownOrder(state, orderID) {
		AbortWithError(c, ErrNotFound)
		return
	}

	state.SetOverride(orderID)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"order_id": orderID, "state": recdomain.StateManualCash}})
}

func (s *Server) ClearOverride(c *gin.Context) {
	state := session.FromContext(c)
	orderID := strings.TrimSpace(c.Param("orderId"))
	if orderID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	state.ClearOverride(orderID)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"order_id": orderID}})
}

// SaveOverrides persists the session's current override set, replacing any
// previously saved set.
func (s *Server) SaveOverrides(c *gin.Context) {
	state := session.FromContext(c)
	if _, _, _, loaded := state.Dataset(); !loaded {
		AbortWithError(c, ErrNoDataset)
		return
	}

	overrides := state.Overrides()
	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}

	if err := s.settingsSvc.SaveOverrides(c.Request.Context(), ids); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"saved": len(ids)}})
}

// LoadOverrides replaces the session's override set with the saved one.
func (s *Server) LoadOverrides(c *gin.Context) {
	state := session.FromContext(c)
	if _, _, _, loaded := state.Dataset(); !loaded {
		AbortWithError(c, ErrNoDataset)
		return
	}

	ids, err := s.settingsSvc.SavedOverrides(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	state.ReplaceOverrides(ids)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"loaded": len(ids)}})
}

func (s *Server) knownOrder(state *session.State, orderID string) bool {
	orders, _, _, loaded := state.Dataset()
	if !loaded {
		return false
	}
	for _, o := range orders {
		if o.ID == orderID {
			return true
		}
	}
	return false
}
