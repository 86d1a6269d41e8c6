// Package domain holds the processor fee schedule and fee computation model.
package domain

import (
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
)

// Schedule is the tiered processor rate table. All rates are fractions
// before VAT; the VAT factor is applied uniformly at lookup time. It is
// configuration supplied at calculation time and may be overridden per
// session without persisting.
type Schedule struct {
	// BaseRate is the per-transaction processing rate (credit and debit).
	BaseRate float64 `json:"base_rate" mapstructure:"baseRate"`
	// TransferRate applies to transfer / account-balance methods.
	TransferRate float64 `json:"transfer_rate" mapstructure:"transferRate"`
	// VATFactor multiplies every rate (e.g. 1.26 for 21% VAT plus levies).
	VATFactor float64 `json:"vat_factor" mapstructure:"vatFactor"`
	// Tiers maps an installment count to its financing surcharge. Only the
	// configured counts exist; arbitrary counts resolve by nearest tier.
	Tiers map[int]float64 `json:"tiers" mapstructure:"tiers"`
}

// DefaultSchedule returns the rate table calibrated against real processor
// settlements (6 installments on a 500000 gross settle at 118503).
func DefaultSchedule() Schedule {
	return Schedule{
		BaseRate:     0.0329,
		TransferRate: 0.0099,
		VATFactor:    1.26,
		Tiers: map[int]float64{
			1:  0,
			2:  0.0606,
			3:  0.0798,
			6:  0.1552,
			12: 0.3104,
			18: 0.4346,
			24: 0.5432,
		},
	}
}

// Breakdown is the fee and margin computation appended to a normalized order.
type Breakdown struct {
	Rate       float64 `json:"rate"`
	Commission float64 `json:"commission"`
	Net        float64 `json:"net"`
	Margin     float64 `json:"margin"`
	MarginPct  float64 `json:"margin_pct"`
}

// AnnotatedOrder pairs a normalized order with its computed fees. The fee
// fields are owned by the calculator; the embedded order is never mutated.
type AnnotatedOrder struct {
	orderdomain.Order
	Fees Breakdown `json:"fees"`
}

// Service computes fee rates and margins from a schedule. Pure; re-running
// with a different schedule against the same orders is the what-if path.
type Service interface {
	Rate(s Schedule, method string, installments int) float64
	Apply(s Schedule, o orderdomain.Order) Breakdown
	Annotate(s Schedule, orders []orderdomain.Order) []AnnotatedOrder
}
