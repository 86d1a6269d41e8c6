package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/storewatch/internal/session"
	settingsdomain "github.com/smallbiznis/storewatch/internal/settings/domain"
)

// settingsKey is the persisted-settings row in the settings store.
const settingsKey = "session_settings"

func (s *Server) GetSettings(c *gin.Context) {
	state := session.FromContext(c)
	c.JSON(http.StatusOK, gin.H{"data": state.Settings()})
}

// UpdateSettings replaces the session's adjustable inputs. Session scoped
// until explicitly saved.
func (s *Server) UpdateSettings(c *gin.Context) {
	var req session.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.ExchangeRate < 0 || req.AdSpend < 0 ||
		req.TaxPct < 0 || req.TaxPct > 100 ||
		req.AlertThresholdDays < 0 || req.LeadTimeDays < 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.MessageTemplate) == "" {
		req.MessageTemplate = session.DefaultSettings().MessageTemplate
	}

	state := session.FromContext(c)
	state.SetSettings(req)
	c.JSON(http.StatusOK, gin.H{"data": req})
}

// SaveSettings persists the session's settings so future sessions start
// from them.
func (s *Server) SaveSettings(c *gin.Context) {
	state := session.FromContext(c)
	payload, err := json.Marshal(state.Settings())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.settingsSvc.Set(c.Request.Context(), settingsKey, string(payload)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"saved": true}})
}

// LoadSettings replaces the session's settings with the saved ones.
func (s *Server) LoadSettings(c *gin.Context) {
	raw, ok, err := s.settingsSvc.Get(c.Request.Context(), settingsKey)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}

	var settings session.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		AbortWithError(c, err)
		return
	}

	state := session.FromContext(c)
	state.SetSettings(settings)
	c.JSON(http.StatusOK, gin.H{"data": settings})
}

func (s *Server) ListProductCosts(c *gin.Context) {
	costs, err := s.settingsSvc.ProductCosts(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": costs})
}

type setCostRequest struct {
	UnitCost string `json:"unit_cost"`
}

// SetProductCost upserts one cost book entry. The cost arrives as a string
// so clients with decimal inputs do not lose intent to float coercion.
func (s *Server) SetProductCost(c *gin.Context) {
	product := strings.TrimSpace(c.Param("product"))
	if product == "" {
		AbortWithError(c, settingsdomain.ErrInvalidProduct)
		return
	}

	var req setCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	unitCost, err := strconv.ParseFloat(strings.TrimSpace(req.UnitCost), 64)
	if err != nil {
		AbortWithError(c, settingsdomain.ErrInvalidCost)
		return
	}

	if err := s.settingsSvc.SetProductCost(c.Request.Context(), product, unitCost); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"product": product, "unit_cost": unitCost}})
}

func (s *Server) DeleteProductCost(c *gin.Context) {
	product := strings.TrimSpace(c.Param("product"))
	if product == "" {
		AbortWithError(c, settingsdomain.ErrInvalidProduct)
		return
	}
	if err := s.settingsSvc.DeleteProductCost(c.Request.Context(), product); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"product": product}})
}
