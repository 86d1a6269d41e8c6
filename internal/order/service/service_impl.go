package service

import (
	"fmt"
	"strings"
	"time"

	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	"github.com/smallbiznis/storewatch/internal/storefront"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultChannel labels orders whose feed carries no sales channel.
const DefaultChannel = "shopwire"

var titleCaser = cases.Title(language.Und)

type Service struct {
	log           *zap.Logger
	defaultLocale string
}

func NewService(log *zap.Logger, defaultLocale string) orderdomain.Service {
	if defaultLocale == "" {
		defaultLocale = "es"
	}
	return &Service{
		log:           log.Named("order.service"),
		defaultLocale: defaultLocale,
	}
}

func (s *Service) NormalizeAll(raw []storefront.RawOrder) []orderdomain.Order {
	out := make([]orderdomain.Order, 0, len(raw))
	for _, r := range raw {
		out = append(out, s.Normalize(r))
	}
	return out
}

// Normalize maps one raw order onto the canonical model. Every branch
// degrades to a safe default; this function does not fail.
func (s *Service) Normalize(raw storefront.RawOrder) orderdomain.Order {
	breakdown := storefront.DecodePaymentDetails(raw.PaymentDetails, raw.Gateway)

	o := orderdomain.Order{
		ID:             raw.ID.String(),
		Number:         raw.Number.String(),
		Date:           normalizeDate(raw.CreatedAt),
		Customer:       strings.TrimSpace(raw.ContactName),
		Method:         methodLabel(breakdown, raw.Gateway),
		Installments:   breakdown.Installments,
		Gross:          raw.Total.Or(0),
		Discount:       raw.Discount.Or(0),
		ShippingCost:   raw.ShippingOwner.Or(0),
		ShippingStatus: raw.ShippingStatus,
		Channel:        channel(raw.AppID.String()),
		Status:         raw.Status,
	}
	if o.Number == "" {
		o.Number = o.ID
	}

	o.ReportedCosts = orderdomain.ReportedCosts{
		Commission: breakdown.Commission,
		Financing:  breakdown.FinancingCost,
		Other:      breakdown.OtherCost,
	}
	if o.ReportedCosts.Total() == 0 {
		// No structured breakdown: the aggregate gateway cost is the
		// best available commission estimate.
		o.ReportedCosts.Commission = raw.GatewayCost.Or(0)
	}

	o.Lines = make([]orderdomain.ProductLine, 0, len(raw.Products))
	for _, line := range raw.Products {
		o.Lines = append(o.Lines, orderdomain.ProductLine{
			Name:     storefront.ResolveLocalized(line.Name, s.defaultLocale),
			Quantity: normalizeQuantity(line.Quantity),
			UnitCost: line.Cost.Or(0),
		})
	}

	return o
}

// methodLabel renders the human payment-method label. Older feeds carry a
// method/gateway code that we title-case with card brand and installment
// suffixes; newer feeds ship a structured breakdown whose method code runs
// through the same path. The label never carries the installment count as
// data; that stays in Order.Installments.
func methodLabel(b storefront.PaymentBreakdown, gateway string) string {
	method := b.Method
	brand := titleCaser.String(strings.ToLower(b.CardBrand))

	switch method {
	case "credit_card":
		if brand != "" {
			return fmt.Sprintf("Credito %s %dc", brand, b.Installments)
		}
		return fmt.Sprintf("Credito %dc", b.Installments)
	case "debit_card":
		if brand != "" {
			return "Debito " + brand
		}
		return "Debito"
	case "":
		return strings.ToLower(strings.TrimSpace(gateway))
	default:
		return titleCaser.String(strings.ReplaceAll(method, "_", " "))
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// normalizeDate reduces a feed timestamp to a calendar date. Unparseable
// input yields an empty date; the record is still kept.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// normalizeQuantity defaults missing, malformed and non-positive quantities
// to a single unit.
func normalizeQuantity(n storefront.Number) int {
	if !n.Valid() || n.Or(0) < 1 {
		return 1
	}
	return int(n.Or(1))
}

func channel(appID string) string {
	if strings.TrimSpace(appID) == "" {
		return DefaultChannel
	}
	return appID
}
