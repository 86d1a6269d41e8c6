// Package domain models per-product sales velocity and restock urgency.
package domain

import (
	"time"

	inventorydomain "github.com/smallbiznis/storewatch/internal/inventory/domain"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
)

// Params are the operator-adjustable restock knobs.
type Params struct {
	AlertThresholdDays int `json:"alert_threshold_days"`
	LeadTimeDays       int `json:"lead_time_days"`
}

func DefaultParams() Params {
	return Params{AlertThresholdDays: 5, LeadTimeDays: 7}
}

// Record is the velocity and restock projection for one product over the
// queried period. Recomputed fresh on every query, never persisted.
type Record struct {
	Product   string  `json:"product"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
	PerDay    float64 `json:"per_day"`
	PerWeek   float64 `json:"per_week"`
	PerMonth  float64 `json:"per_month"`

	// Stock projection. StockKnown gates every field below it; a known
	// stock with zero velocity leaves DaysRemaining undefined.
	Stock         float64 `json:"stock"`
	StockKnown    bool    `json:"stock_known"`
	DaysRemaining int     `json:"days_remaining"`
	DaysKnown     bool    `json:"days_known"`
	StockoutDate  string  `json:"stockout_date,omitempty"`

	NeedsRestock bool    `json:"needs_restock"`
	SuggestedQty float64 `json:"suggested_qty"`
	// Urgency ranks products 0–100; it is a heuristic, not a probability.
	Urgency int `json:"urgency"`
}

// Service computes velocity records for the orders of a period of length
// days, against an optional stock snapshot.
type Service interface {
	Compute(
		orders []orderdomain.Order,
		levels map[string]inventorydomain.Level,
		days int,
		today time.Time,
		params Params,
	) []Record
}
