// Package domain models the storefront stock snapshot.
package domain

import "github.com/smallbiznis/storewatch/internal/storefront"

// NoVariant labels rows for products without variant values.
const NoVariant = "—"

// Row is one product variant in the stock snapshot. Unlimited marks
// variants the storefront tracks without a stock quantity.
type Row struct {
	Product   string  `json:"product"`
	Variant   string  `json:"variant"`
	SKU       string  `json:"sku"`
	Stock     float64 `json:"stock"`
	Unlimited bool    `json:"unlimited"`
	Price     float64 `json:"price"`
}

// Level is the per-product stock position aggregated across variants.
// Known is false when every variant is unlimited, or the product is absent
// from the snapshot entirely.
type Level struct {
	Quantity float64
	Known    bool
}

// Summary are the headline snapshot counts.
type Summary struct {
	Products   int     `json:"products"`
	Variants   int     `json:"variants"`
	TotalUnits float64 `json:"total_units"`
}

// Service normalizes raw product payloads into snapshot rows and derives
// stock views from them.
type Service interface {
	Normalize(raw []storefront.RawProduct) []Row
	Alerts(rows []Row, threshold float64) []Row
	Summarize(rows []Row) Summary
	Levels(rows []Row) map[string]Level
}
