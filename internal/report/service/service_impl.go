package service

import (
	"fmt"
	"math"
	"sort"

	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	reportdomain "github.com/smallbiznis/storewatch/internal/report/domain"
)

type Service struct{}

func NewService() reportdomain.Service {
	return &Service{}
}

func (s *Service) ByMethod(orders []feesdomain.AnnotatedOrder) []reportdomain.MethodSummary {
	byMethod := make(map[string]*reportdomain.MethodSummary)
	for _, o := range orders {
		sum := byMethod[o.Method]
		if sum == nil {
			sum = &reportdomain.MethodSummary{Method: o.Method}
			byMethod[o.Method] = sum
		}
		sum.Orders++
		sum.Gross += o.Gross
		sum.Commission += o.Fees.Commission
		sum.Net += o.Fees.Net
	}

	out := make([]reportdomain.MethodSummary, 0, len(byMethod))
	for _, sum := range byMethod {
		if sum.Gross > 0 {
			sum.CostPct = round2(sum.Commission / sum.Gross * 100)
		}
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gross != out[j].Gross {
			return out[i].Gross > out[j].Gross
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func (s *Service) Daily(orders []orderdomain.Order) []reportdomain.DailySales {
	byDate := make(map[string]float64)
	for _, o := range orders {
		byDate[o.Date] += o.Gross
	}
	out := make([]reportdomain.DailySales, 0, len(byDate))
	for date, gross := range byDate {
		out = append(out, reportdomain.DailySales{Date: date, Gross: gross})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (s *Service) TopProducts(orders []orderdomain.Order, limit int) []reportdomain.TopProduct {
	byProduct := make(map[string]int)
	for _, o := range orders {
		for _, l := range o.Lines {
			if l.Name != "" {
				byProduct[l.Name] += l.Quantity
			}
		}
	}
	out := make([]reportdomain.TopProduct, 0, len(byProduct))
	for name, units := range byProduct {
		out = append(out, reportdomain.TopProduct{Product: name, Units: units})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].Product < out[j].Product
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Financial folds annotated orders into the period waterfall. The tax step
// applies the effective tax percent to gross revenue; advertising spend is
// operator-entered for the period.
func (s *Service) Financial(orders []feesdomain.AnnotatedOrder, inputs reportdomain.WhatIf) reportdomain.FinancialSummary {
	var sum reportdomain.FinancialSummary
	for _, o := range orders {
		sum.Gross += o.Gross
		sum.Commission += o.Fees.Commission
		sum.Net += o.Fees.Net
		sum.ProductCost += o.ProductCost()
		sum.ShippingCost += o.ShippingCost
	}

	sum.GrossMargin = round2(sum.Net - sum.ProductCost - sum.ShippingCost)
	sum.Tax = round2(sum.Gross * inputs.TaxPct / 100)
	sum.AdSpend = inputs.AdSpend
	sum.Result = round2(sum.GrossMargin - sum.Tax - sum.AdSpend)
	if inputs.ExchangeRate > 0 {
		sum.ResultForeign = round2(sum.Result / inputs.ExchangeRate)
	}

	sum.Waterfall = []reportdomain.WaterfallRow{
		{Label: "gross", Amount: sum.Gross},
		{Label: "commission", Amount: -sum.Commission},
		{Label: "product_cost", Amount: -sum.ProductCost},
		{Label: "shipping_cost", Amount: -sum.ShippingCost},
		{Label: fmt.Sprintf("tax_%.1f_pct", inputs.TaxPct), Amount: -sum.Tax},
		{Label: "ad_spend", Amount: -sum.AdSpend},
		{Label: "result", Amount: sum.Result},
	}
	return sum
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
