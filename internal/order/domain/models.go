// Package domain contains the canonical order model produced by normalization.
package domain

// ProductLine is one ordered product with its resolved display name.
type ProductLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
}

// ReportedCosts carries the processor's own cost breakdown as reported by
// the feed, summed across split-payment entries. When the feed reports no
// structured breakdown the aggregate gateway cost lands in Commission.
type ReportedCosts struct {
	Commission float64 `json:"commission"`
	Financing  float64 `json:"financing"`
	Other      float64 `json:"other"`
}

// Total sums all reported processor costs.
func (r ReportedCosts) Total() float64 {
	return r.Commission + r.Financing + r.Other
}

// Order is the canonical view of one raw storefront order. It is immutable
// once produced; recomputation re-derives it from the raw payload.
type Order struct {
	ID             string        `json:"id"`
	Number         string        `json:"number"`
	Date           string        `json:"date"`
	Customer       string        `json:"customer"`
	Method         string        `json:"method"`
	Installments   int           `json:"installments"`
	Gross          float64       `json:"gross"`
	Discount       float64       `json:"discount"`
	ShippingCost   float64       `json:"shipping_cost"`
	ReportedCosts  ReportedCosts `json:"reported_costs"`
	Lines          []ProductLine `json:"lines"`
	ShippingStatus string        `json:"shipping_status"`
	Channel        string        `json:"channel"`
	Status         string        `json:"status"`
}

// ProductCost sums unit cost × quantity across lines.
func (o Order) ProductCost() float64 {
	var total float64
	for _, l := range o.Lines {
		total += l.UnitCost * float64(l.Quantity)
	}
	return total
}

// Quantity sums line quantities.
func (o Order) Quantity() int {
	var total int
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}

// ProductNames returns the distinct line names, in first-seen order.
func (o Order) ProductNames() []string {
	seen := make(map[string]struct{}, len(o.Lines))
	names := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		if l.Name == "" {
			continue
		}
		if _, ok := seen[l.Name]; ok {
			continue
		}
		seen[l.Name] = struct{}{}
		names = append(names, l.Name)
	}
	return names
}
