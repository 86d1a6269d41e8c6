package service

import (
	"strings"
	"time"

	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	recdomain "github.com/smallbiznis/storewatch/internal/reconciliation/domain"
	"github.com/smallbiznis/storewatch/internal/storefront"
	"go.uber.org/zap"
)

type Service struct {
	log *zap.Logger
}

func NewService(log *zap.Logger) recdomain.Service {
	return &Service{log: log.Named("reconciliation.service")}
}

func (s *Service) NormalizeTransactions(raw []storefront.RawTransaction) []recdomain.Transaction {
	out := make([]recdomain.Transaction, 0, len(raw))
	for _, r := range raw {
		installments := int(r.Installments.Or(1))
		if installments < 1 {
			installments = 1
		}
		out = append(out, recdomain.Transaction{
			ID:           r.ID.String(),
			Date:         normalizeDate(r.CreatedAt),
			Status:       r.Status,
			Method:       r.PaymentMethod,
			Installments: installments,
			Amount:       r.Amount.Or(0),
			OrderRef:     r.OrderID.String(),
		})
	}
	return out
}

// Reconcile derives one record per order. The manual override is checked
// first and always wins; otherwise the first transaction referencing the
// order decides. Duplicate transactions per order are not an error, the
// first one is taken. The whole report is recomputed from its three inputs;
// there is no other state.
func (s *Service) Reconcile(
	orders []orderdomain.Order,
	txs []recdomain.Transaction,
	overrides map[string]struct{},
) recdomain.Report {
	byRef := make(map[string]recdomain.Transaction, len(txs))
	for _, tx := range txs {
		if tx.OrderRef == "" {
			continue
		}
		if _, ok := byRef[tx.OrderRef]; !ok {
			byRef[tx.OrderRef] = tx
		}
	}

	report := recdomain.Report{
		Records: make([]recdomain.Record, 0, len(orders)),
		Counts:  make(map[recdomain.State]int),
	}

	orderIDs := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		orderIDs[o.ID] = struct{}{}

		rec := recdomain.Record{
			OrderID:     o.ID,
			OrderNumber: o.Number,
			Date:        o.Date,
			Customer:    o.Customer,
			Method:      o.Method,
			Total:       o.Gross,
		}

		match, matched := byRef[o.ID]
		if matched {
			rec.TransactionID = match.ID
		}

		switch {
		case overrides != nil && hasOverride(overrides, o.ID):
			rec.State = recdomain.StateManualCash
		case matched && match.Status == recdomain.SettledStatus:
			rec.State = recdomain.StateMatched
		case matched:
			rec.State = recdomain.StateStatusMismatch
			rec.StatusDetail = match.Status
		default:
			rec.State = recdomain.StateUnverified
		}

		report.Counts[rec.State]++
		report.Records = append(report.Records, rec)
	}

	for _, tx := range txs {
		if _, ok := orderIDs[tx.OrderRef]; !ok {
			report.Orphans = append(report.Orphans, tx)
		}
	}

	return report
}

func hasOverride(overrides map[string]struct{}, orderID string) bool {
	_, ok := overrides[orderID]
	return ok
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

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
