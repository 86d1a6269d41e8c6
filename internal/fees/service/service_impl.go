package service

import (
	"math"
	"strings"

	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
)

var (
	transferHints = []string{"transfer", "wire", "account_money"}
	debitHints    = []string{"debit", "debito", "modo"}
)

type Service struct{}

func NewService() feesdomain.Service {
	return &Service{}
}

// Rate resolves the effective fee rate for a payment method and installment
// count. Transfer-class methods pay the flat transfer rate, debit-class the
// base processing rate, and credit adds the nearest-tier financing
// surcharge. VAT applies to every component.
func (s *Service) Rate(sched feesdomain.Schedule, method string, installments int) float64 {
	method = strings.ToLower(method)

	if containsAny(method, transferHints) {
		return sched.TransferRate * sched.VATFactor
	}
	if containsAny(method, debitHints) {
		return sched.BaseRate * sched.VATFactor
	}

	if installments < 1 {
		installments = 1
	}
	surcharge := sched.Tiers[nearestTier(sched.Tiers, installments)]
	return sched.BaseRate*sched.VATFactor + surcharge*sched.VATFactor
}

// Apply computes commission, net proceeds and margin for one order.
// Margin % is 0 when the gross total is not positive.
func (s *Service) Apply(sched feesdomain.Schedule, o orderdomain.Order) feesdomain.Breakdown {
	rate := s.Rate(sched, o.Method, o.Installments)
	commission := round2(o.Gross * rate)
	net := round2(o.Gross - commission)
	margin := round2(net - o.ProductCost() - o.ShippingCost)

	var marginPct float64
	if o.Gross > 0 {
		marginPct = round2(margin / o.Gross * 100)
	}

	return feesdomain.Breakdown{
		Rate:       rate,
		Commission: commission,
		Net:        net,
		Margin:     margin,
		MarginPct:  marginPct,
	}
}

func (s *Service) Annotate(sched feesdomain.Schedule, orders []orderdomain.Order) []feesdomain.AnnotatedOrder {
	out := make([]feesdomain.AnnotatedOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, feesdomain.AnnotatedOrder{Order: o, Fees: s.Apply(sched, o)})
	}
	return out
}

// nearestTier picks the configured installment key closest to the requested
// count. Processor contracts only define specific counts; intermediate
// requests still need a sane rate. Ties resolve to the smaller key, the
// lowest-cost assumption.
func nearestTier(tiers map[int]float64, installments int) int {
	best := -1
	for key := range tiers {
		if best == -1 {
			best = key
			continue
		}
		d, bd := abs(key-installments), abs(best-installments)
		if d < bd || (d == bd && key < best) {
			best = key
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func containsAny(s string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
