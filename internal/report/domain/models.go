// Package domain models the tabular aggregate reports served to the
// presentation layer.
package domain

import (
	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
)

// MethodSummary aggregates annotated orders per resolved payment method.
type MethodSummary struct {
	Method     string  `json:"method"`
	Orders     int     `json:"orders"`
	Gross      float64 `json:"gross"`
	Commission float64 `json:"commission"`
	Net        float64 `json:"net"`
	CostPct    float64 `json:"cost_pct"`
}

// DailySales is gross revenue for one calendar date.
type DailySales struct {
	Date  string  `json:"date"`
	Gross float64 `json:"gross"`
}

// TopProduct ranks a product by units sold.
type TopProduct struct {
	Product string `json:"product"`
	Units   int    `json:"units"`
}

// WhatIf are the operator inputs for the financial summary that do not come
// from the feed.
type WhatIf struct {
	ExchangeRate float64 `json:"exchange_rate"`
	TaxPct       float64 `json:"tax_pct"`
	AdSpend      float64 `json:"ad_spend"`
}

// WaterfallRow is one step of the period result decomposition.
type WaterfallRow struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// FinancialSummary decomposes the period result from gross revenue down to
// the final operating result. Estimates, not ledger-grade bookkeeping.
type FinancialSummary struct {
	Gross         float64        `json:"gross"`
	Commission    float64        `json:"commission"`
	Net           float64        `json:"net"`
	ProductCost   float64        `json:"product_cost"`
	ShippingCost  float64        `json:"shipping_cost"`
	GrossMargin   float64        `json:"gross_margin"`
	Tax           float64        `json:"tax"`
	AdSpend       float64        `json:"ad_spend"`
	Result        float64        `json:"result"`
	ResultForeign float64        `json:"result_foreign"`
	Waterfall     []WaterfallRow `json:"waterfall"`
}

// Service builds aggregate reports from annotated orders. ByMethod, Daily
// and TopProducts are pure folds. Financial re-annotates nothing; callers
// pass orders already annotated against the schedule they want, so what-if
// recomputation never re-fetches.
type Service interface {
	ByMethod(orders []feesdomain.AnnotatedOrder) []MethodSummary
	Daily(orders []orderdomain.Order) []DailySales
	TopProducts(orders []orderdomain.Order, limit int) []TopProduct
	Financial(orders []feesdomain.AnnotatedOrder, inputs WhatIf) FinancialSummary
}
