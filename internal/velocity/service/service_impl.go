package service

import (
	"math"
	"sort"
	"time"

	inventorydomain "github.com/smallbiznis/storewatch/internal/inventory/domain"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	velocitydomain "github.com/smallbiznis/storewatch/internal/velocity/domain"
	"go.uber.org/zap"
)

type Service struct {
	log *zap.Logger
}

func NewService(log *zap.Logger) velocitydomain.Service {
	return &Service{log: log.Named("velocity.service")}
}

// Compute aggregates the period's orders into one record per distinct
// product name. Units are attributed per line; revenue is split evenly
// across the distinct product names of each order, a deliberate
// approximation rather than a price-weighted allocation. Identical inputs
// yield identical output: ties in urgency sort by product name.
func (s *Service) Compute(
	orders []orderdomain.Order,
	levels map[string]inventorydomain.Level,
	days int,
	today time.Time,
	params velocitydomain.Params,
) []velocitydomain.Record {
	type agg struct {
		units   int
		revenue float64
	}
	byProduct := make(map[string]*agg)

	for _, o := range orders {
		names := o.ProductNames()
		for _, l := range o.Lines {
			if l.Name == "" {
				continue
			}
			a := byProduct[l.Name]
			if a == nil {
				a = &agg{}
				byProduct[l.Name] = a
			}
			a.units += l.Quantity
		}
		if len(names) == 0 {
			continue
		}
		share := o.Gross / float64(len(names))
		for _, name := range names {
			byProduct[name].revenue += share
		}
	}

	records := make([]velocitydomain.Record, 0, len(byProduct))
	for name, a := range byProduct {
		rec := velocitydomain.Record{
			Product:   name,
			UnitsSold: a.units,
			Revenue:   math.Round(a.revenue*100) / 100,
		}

		// A zero-length period yields zero velocity, not a division error.
		if days > 0 {
			rec.PerDay = float64(a.units) / float64(days)
			rec.PerWeek = rec.PerDay * 7
			rec.PerMonth = rec.PerDay * 30
		}

		if level, ok := levels[name]; ok && level.Known {
			rec.Stock = level.Quantity
			rec.StockKnown = true
			if rec.PerDay > 0 {
				rec.DaysRemaining = int(math.Round(level.Quantity / rec.PerDay))
				rec.DaysKnown = true
				rec.StockoutDate = today.AddDate(0, 0, rec.DaysRemaining).Format("2006-01-02")
			}
		}

		if rec.DaysKnown && rec.DaysRemaining <= params.AlertThresholdDays+params.LeadTimeDays {
			rec.NeedsRestock = true
			suggested := math.Round(rec.PerMonth - rec.Stock + rec.PerDay*float64(params.LeadTimeDays))
			rec.SuggestedQty = math.Max(0, suggested)
		}

		rec.Urgency = urgency(rec)
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Urgency != records[j].Urgency {
			return records[i].Urgency > records[j].Urgency
		}
		return records[i].Product < records[j].Product
	})
	return records
}

// urgency scores 0–100 for ranking. Stockout proximity only contributes
// when days-remaining is defined.
func urgency(rec velocitydomain.Record) int {
	score := rec.PerDay * 10
	if rec.DaysKnown && rec.PerDay > 0 {
		score += math.Max(0, float64(30-rec.DaysRemaining)*2)
	}
	rounded := int(math.Round(score))
	if rounded > 100 {
		return 100
	}
	return rounded
}
