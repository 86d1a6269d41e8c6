package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	"github.com/smallbiznis/storewatch/internal/period"
	"github.com/smallbiznis/storewatch/internal/session"
	"github.com/smallbiznis/storewatch/internal/storefront"
)

type searchRequest struct {
	Period string `json:"period"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type searchResponse struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Days         int     `json:"days"`
	Orders       int     `json:"orders"`
	Transactions int     `json:"transactions"`
	Gross        float64 `json:"gross"`
}

// Search retrieves the period's orders and settlement transactions, builds
// the session dataset and clears any manual cash overrides from the
// previous search.
func (s *Server) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	from, to, err := parseCustomBounds(req.From, req.To)
	if err != nil {
		AbortWithError(c, period.ErrInvalidPeriod)
		return
	}

	rng, err := period.Resolve(req.Period, s.clock.Now(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	window := storefront.Date{From: rng.From, To: rng.To}

	rawOrders, err := s.store.Orders(ctx, window)
	if err != nil {
		s.log.Warn("order retrieval failed", zap.Error(err))
		AbortWithError(c, ErrUpstream)
		return
	}

	// Transactions failing is not fatal: reconciliation degrades to
	// everything-unverified rather than losing the order dataset.
	rawTxs, err := s.store.Transactions(ctx, window)
	if err != nil {
		s.log.Warn("transaction retrieval failed", zap.Error(err))
		rawTxs = nil
	}

	orders := s.orderSvc.NormalizeAll(rawOrders)
	s.applyCostBook(c, orders)
	txs := s.reconcileSvc.NormalizeTransactions(rawTxs)

	state := session.FromContext(c)
	state.ResetDataset(rng.From, rng.To, rng.Days(), orders, txs)

	var gross float64
	for _, o := range orders {
		gross += o.Gross
	}

	c.JSON(http.StatusOK, gin.H{"data": searchResponse{
		From:         rng.From.Format("2006-01-02"),
		To:           rng.To.Format("2006-01-02"),
		Days:         rng.Days(),
		Orders:       len(orders),
		Transactions: len(txs),
		Gross:        gross,
	}})
}

// GetPeriod reports the currently loaded period.
func (s *Server) GetPeriod(c *gin.Context) {
	state := session.FromContext(c)
	_, _, days, loaded := state.Dataset()
	if !loaded {
		AbortWithError(c, ErrNoDataset)
		return
	}
	from, to := state.Period()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
		"days": days,
	}})
}

// applyCostBook fills missing line unit costs from the persisted product
// cost book. Feed-reported costs always win.
func (s *Server) applyCostBook(c *gin.Context, orders []orderdomain.Order) {
	costs, err := s.settingsSvc.ProductCosts(c.Request.Context())
	if err != nil {
		s.log.Warn("cost book unavailable", zap.Error(err))
		return
	}
	if len(costs) == 0 {
		return
	}
	for i := range orders {
		for j := range orders[i].Lines {
			line := &orders[i].Lines[j]
			if line.UnitCost == 0 {
				line.UnitCost = costs[line.Name]
			}
		}
	}
}

func parseCustomBounds(from, to string) (time.Time, time.Time, error) {
	var f, t time.Time
	var err error
	if from != "" {
		f, err = time.Parse("2006-01-02", from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to != "" {
		t, err = time.Parse("2006-01-02", to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return f, t, nil
}
