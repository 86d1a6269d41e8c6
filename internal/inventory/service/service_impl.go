package service

import (
	"encoding/json"
	"strings"

	inventorydomain "github.com/smallbiznis/storewatch/internal/inventory/domain"
	"github.com/smallbiznis/storewatch/internal/storefront"
	"go.uber.org/zap"
)

type Service struct {
	log           *zap.Logger
	defaultLocale string
}

func NewService(log *zap.Logger, defaultLocale string) inventorydomain.Service {
	if defaultLocale == "" {
		defaultLocale = "es"
	}
	return &Service{
		log:           log.Named("inventory.service"),
		defaultLocale: defaultLocale,
	}
}

// Normalize flattens raw products into one row per variant. A product with
// no variants contributes nothing; a variant without values gets the
// no-variant sentinel; a missing stock quantity marks the row unlimited.
func (s *Service) Normalize(raw []storefront.RawProduct) []inventorydomain.Row {
	rows := make([]inventorydomain.Row, 0, len(raw))
	for _, p := range raw {
		name := storefront.ResolveLocalized(p.Name, s.defaultLocale)
		for _, v := range p.Variants {
			row := inventorydomain.Row{
				Product: name,
				Variant: variantLabel(v.Values, s.defaultLocale),
				SKU:     v.SKU,
				Price:   v.Price.Or(0),
			}
			if v.Stock == nil {
				row.Unlimited = true
			} else {
				row.Stock = *v.Stock
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Alerts returns rows whose tracked stock is at or under the threshold.
// Unlimited rows never alert.
func (s *Service) Alerts(rows []inventorydomain.Row, threshold float64) []inventorydomain.Row {
	out := make([]inventorydomain.Row, 0)
	for _, r := range rows {
		if !r.Unlimited && r.Stock <= threshold {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) Summarize(rows []inventorydomain.Row) inventorydomain.Summary {
	products := make(map[string]struct{})
	sum := inventorydomain.Summary{Variants: len(rows)}
	for _, r := range rows {
		products[r.Product] = struct{}{}
		if !r.Unlimited {
			sum.TotalUnits += r.Stock
		}
	}
	sum.Products = len(products)
	return sum
}

// Levels aggregates tracked stock per product name. A product whose
// variants are all unlimited stays unknown.
func (s *Service) Levels(rows []inventorydomain.Row) map[string]inventorydomain.Level {
	levels := make(map[string]inventorydomain.Level)
	for _, r := range rows {
		level := levels[r.Product]
		if !r.Unlimited {
			level.Quantity += r.Stock
			level.Known = true
		}
		levels[r.Product] = level
	}
	return levels
}

// variantLabel joins the localized variant values, e.g. "Rojo / XL".
func variantLabel(values []json.RawMessage, defaultLocale string) string {
	if len(values) == 0 {
		return inventorydomain.NoVariant
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if resolved := storefront.ResolveLocalized(v, defaultLocale); resolved != "" {
			parts = append(parts, resolved)
		}
	}
	if len(parts) == 0 {
		return inventorydomain.NoVariant
	}
	return strings.Join(parts, " / ")
}
