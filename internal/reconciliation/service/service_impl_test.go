package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	recdomain "github.com/smallbiznis/storewatch/internal/reconciliation/domain"
	"github.com/smallbiznis/storewatch/internal/storefront"
)

func testOrders() []orderdomain.Order {
	return []orderdomain.Order{
		{ID: "1", Number: "1001", Method: "Credito Visa 3c", Gross: 1000},
		{ID: "2", Number: "1002", Method: "Transferencia", Gross: 2000},
		{ID: "3", Number: "1003", Method: "Efectivo", Gross: 3000},
	}
}

func TestReconcile_States(t *testing.T) {
	svc := NewService(zap.NewNop())

	txs := []recdomain.Transaction{
		{ID: "t1", Status: "paid", OrderRef: "1", Amount: 1000},
		{ID: "t2", Status: "pending", OrderRef: "2", Amount: 2000},
	}

	report := svc.Reconcile(testOrders(), txs, nil)
	assert.Len(t, report.Records, 3)

	assert.Equal(t, recdomain.StateMatched, report.Records[0].State)
	assert.Equal(t, "t1", report.Records[0].TransactionID)

	assert.Equal(t, recdomain.StateStatusMismatch, report.Records[1].State)
	assert.Equal(t, "pending", report.Records[1].StatusDetail)

	// Cash-hinting methods get no special pending state.
	assert.Equal(t, recdomain.StateUnverified, report.Records[2].State)

	assert.Equal(t, 1, report.Counts[recdomain.StateMatched])
	assert.Equal(t, 1, report.Counts[recdomain.StateStatusMismatch])
	assert.Equal(t, 1, report.Counts[recdomain.StateUnverified])
	assert.Empty(t, report.Orphans)
}

func TestReconcile_OverrideAlwaysWins(t *testing.T) {
	svc := NewService(zap.NewNop())

	txs := []recdomain.Transaction{
		{ID: "t1", Status: "paid", OrderRef: "1"},
	}
	overrides := map[string]struct{}{"1": {}, "3": {}}

	report := svc.Reconcile(testOrders(), txs, overrides)
	assert.Equal(t, recdomain.StateManualCash, report.Records[0].State)
	// The matched transaction id is still surfaced for audit.
	assert.Equal(t, "t1", report.Records[0].TransactionID)
	assert.Equal(t, recdomain.StateManualCash, report.Records[2].State)
	assert.Equal(t, 2, report.Counts[recdomain.StateManualCash])
}

func TestReconcile_DuplicateTransactionsFirstWins(t *testing.T) {
	svc := NewService(zap.NewNop())

	txs := []recdomain.Transaction{
		{ID: "t1", Status: "pending", OrderRef: "1"},
		{ID: "t2", Status: "paid", OrderRef: "1"},
	}

	report := svc.Reconcile(testOrders()[:1], txs, nil)
	assert.Equal(t, recdomain.StateStatusMismatch, report.Records[0].State)
	assert.Equal(t, "t1", report.Records[0].TransactionID)
}

func TestReconcile_OrphansListedOnce(t *testing.T) {
	svc := NewService(zap.NewNop())

	txs := []recdomain.Transaction{
		{ID: "t1", Status: "paid", OrderRef: "1"},
		{ID: "t9", Status: "paid", OrderRef: "999"},
	}

	report := svc.Reconcile(testOrders(), txs, nil)
	assert.Len(t, report.Orphans, 1)
	assert.Equal(t, "t9", report.Orphans[0].ID)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	svc := NewService(zap.NewNop())

	report := svc.Reconcile(nil, nil, nil)
	assert.Empty(t, report.Records)
	assert.Empty(t, report.Orphans)
}

func TestNormalizeTransactions(t *testing.T) {
	svc := NewService(zap.NewNop())

	txs := svc.NormalizeTransactions([]storefront.RawTransaction{
		{
			ID:            json.Number("55"),
			CreatedAt:     "2026-08-02T09:00:00+00:00",
			Status:        "paid",
			PaymentMethod: "credit_card",
			Installments:  storefront.NumberOf(6),
			Amount:        storefront.NumberOf(500000),
			OrderID:       json.Number("12345"),
		},
		{ID: json.Number("56"), Installments: storefront.NumberOf(0)},
	})

	assert.Len(t, txs, 2)
	assert.Equal(t, "55", txs[0].ID)
	assert.Equal(t, "2026-08-02", txs[0].Date)
	assert.Equal(t, "12345", txs[0].OrderRef)
	assert.Equal(t, 6, txs[0].Installments)
	// Installments floor at one.
	assert.Equal(t, 1, txs[1].Installments)
}
