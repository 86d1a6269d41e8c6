package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	inventorydomain "github.com/smallbiznis/storewatch/internal/inventory/domain"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	velocitydomain "github.com/smallbiznis/storewatch/internal/velocity/domain"
)

var today = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func line(name string, qty int) orderdomain.ProductLine {
	return orderdomain.ProductLine{Name: name, Quantity: qty}
}

func TestCompute_UnitsAndEvenRevenueSplit(t *testing.T) {
	svc := NewService(zap.NewNop())

	orders := []orderdomain.Order{
		{ID: "1", Gross: 3000, Lines: []orderdomain.ProductLine{line("A", 2), line("B", 1)}},
		{ID: "2", Gross: 1000, Lines: []orderdomain.ProductLine{line("A", 1)}},
	}

	records := svc.Compute(orders, nil, 30, today, velocitydomain.DefaultParams())
	assert.Len(t, records, 2)

	byName := map[string]velocitydomain.Record{}
	for _, r := range records {
		byName[r.Product] = r
	}

	// Revenue splits evenly across distinct names, not by line price.
	assert.Equal(t, 3, byName["A"].UnitsSold)
	assert.Equal(t, 2500.0, byName["A"].Revenue)
	assert.Equal(t, 1, byName["B"].UnitsSold)
	assert.Equal(t, 1500.0, byName["B"].Revenue)

	assert.InDelta(t, 0.1, byName["A"].PerDay, 1e-9)
	assert.InDelta(t, 0.7, byName["A"].PerWeek, 1e-9)
	assert.InDelta(t, 3.0, byName["A"].PerMonth, 1e-9)
}

func TestCompute_DuplicateLineNamesCountOnceForRevenue(t *testing.T) {
	svc := NewService(zap.NewNop())

	orders := []orderdomain.Order{
		{ID: "1", Gross: 900, Lines: []orderdomain.ProductLine{line("A", 1), line("A", 2), line("B", 1)}},
	}

	records := svc.Compute(orders, nil, 30, today, velocitydomain.DefaultParams())
	byName := map[string]velocitydomain.Record{}
	for _, r := range records {
		byName[r.Product] = r
	}

	assert.Equal(t, 3, byName["A"].UnitsSold)
	assert.Equal(t, 450.0, byName["A"].Revenue)
	assert.Equal(t, 450.0, byName["B"].Revenue)
}

func TestCompute_StockProjection(t *testing.T) {
	svc := NewService(zap.NewNop())

	orders := []orderdomain.Order{
		{ID: "1", Gross: 1000, Lines: []orderdomain.ProductLine{line("A", 30)}},
	}
	levels := map[string]inventorydomain.Level{
		"A": {Quantity: 10, Known: true},
	}

	records := svc.Compute(orders, levels, 30, today, velocitydomain.DefaultParams())
	rec := records[0]

	assert.True(t, rec.StockKnown)
	assert.True(t, rec.DaysKnown)
	assert.Equal(t, 10, rec.DaysRemaining) // 10 units at 1/day
	assert.Equal(t, "2026-09-10", rec.StockoutDate)

	// 10 days remaining <= 5 alert + 7 lead.
	assert.True(t, rec.NeedsRestock)
	// monthly 30 - stock 10 + lead 7*1/day = 27.
	assert.Equal(t, 27.0, rec.SuggestedQty)
}

func TestCompute_UnknownStockLeavesProjectionUndefined(t *testing.T) {
	svc := NewService(zap.NewNop())

	orders := []orderdomain.Order{
		{ID: "1", Gross: 100, Lines: []orderdomain.ProductLine{line("A", 5)}},
	}
	levels := map[string]inventorydomain.Level{
		"A": {Known: false},
	}

	records := svc.Compute(orders, levels, 30, today, velocitydomain.DefaultParams())
	rec := records[0]
	assert.False(t, rec.StockKnown)
	assert.False(t, rec.DaysKnown)
	assert.False(t, rec.NeedsRestock)
	assert.Empty(t, rec.StockoutDate)
}

func TestCompute_ZeroVelocityWithKnownStock(t *testing.T) {
	svc := NewService(zap.NewNop())

	// Product sold zero units cannot appear at all (no order lines), but a
	// zero-day period must still not divide by zero.
	orders := []orderdomain.Order{
		{ID: "1", Gross: 100, Lines: []orderdomain.ProductLine{line("A", 2)}},
	}
	records := svc.Compute(orders, nil, 0, today, velocitydomain.DefaultParams())
	rec := records[0]
	assert.Zero(t, rec.PerDay)
	assert.False(t, rec.DaysKnown)
}

func TestCompute_SuggestedQuantityNeverNegative(t *testing.T) {
	svc := NewService(zap.NewNop())

	orders := []orderdomain.Order{
		{ID: "1", Gross: 100, Lines: []orderdomain.ProductLine{line("A", 3)}},
	}
	// Large stock, slow mover: restock only when the window demands it.
	levels := map[string]inventorydomain.Level{
		"A": {Quantity: 1, Known: true},
	}

	records := svc.Compute(orders, levels, 30, today, velocitydomain.Params{AlertThresholdDays: 30, LeadTimeDays: 30})
	rec := records[0]
	assert.True(t, rec.NeedsRestock)
	assert.GreaterOrEqual(t, rec.SuggestedQty, 0.0)
}

func TestCompute_UrgencyBoundsAndDeterministicOrder(t *testing.T) {
	svc := NewService(zap.NewNop())

	orders := []orderdomain.Order{
		{ID: "1", Gross: 100, Lines: []orderdomain.ProductLine{line("Hot", 600)}},
		{ID: "2", Gross: 100, Lines: []orderdomain.ProductLine{line("Slow", 1)}},
		{ID: "3", Gross: 100, Lines: []orderdomain.ProductLine{line("Also Slow", 1)}},
	}
	levels := map[string]inventorydomain.Level{
		"Hot": {Quantity: 2, Known: true},
	}

	records := svc.Compute(orders, levels, 30, today, velocitydomain.DefaultParams())

	assert.Equal(t, "Hot", records[0].Product)
	assert.Equal(t, 100, records[0].Urgency)
	// Equal urgency sorts by product name.
	assert.Equal(t, "Also Slow", records[1].Product)
	assert.Equal(t, "Slow", records[2].Product)
	for _, r := range records {
		assert.GreaterOrEqual(t, r.Urgency, 0)
		assert.LessOrEqual(t, r.Urgency, 100)
	}
}

func TestCompute_RerunIsIdentical(t *testing.T) {
	svc := NewService(zap.NewNop())

	orders := []orderdomain.Order{
		{ID: "1", Gross: 500, Lines: []orderdomain.ProductLine{line("A", 4), line("B", 2)}},
		{ID: "2", Gross: 700, Lines: []orderdomain.ProductLine{line("C", 1), line("A", 1)}},
	}
	levels := map[string]inventorydomain.Level{
		"A": {Quantity: 3, Known: true},
		"B": {Quantity: 50, Known: true},
	}

	first := svc.Compute(orders, levels, 14, today, velocitydomain.DefaultParams())
	second := svc.Compute(orders, levels, 14, today, velocitydomain.DefaultParams())
	assert.Equal(t, first, second)
}
