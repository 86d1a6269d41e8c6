// Package domain models settlement transactions and reconciliation state.
package domain

import (
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	"github.com/smallbiznis/storewatch/internal/storefront"
)

// State is the resolved reconciliation state of one order. Exactly one state
// holds per order at any recomputation.
type State string

const (
	// StateMatched: a settled processor transaction references the order.
	StateMatched State = "MATCHED"
	// StateStatusMismatch: a transaction references the order but its
	// settlement status is not settled; StatusDetail carries it.
	StateStatusMismatch State = "STATUS_MISMATCH"
	// StateManualCash: the operator marked the order as collected in cash
	// outside the processor. Always wins over automatic matching.
	StateManualCash State = "MANUAL_CASH"
	// StateUnverified: no transaction and no override. Orders whose method
	// hints at transfer/cash receive this same state; there is deliberately
	// no distinct pending-cash state.
	StateUnverified State = "UNVERIFIED"
)

// SettledStatus is the processor status string that counts as settled.
const SettledStatus = "paid"

// Transaction is a normalized processor settlement record.
type Transaction struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	Method       string  `json:"method"`
	Installments int     `json:"installments"`
	Amount       float64 `json:"amount"`
	OrderRef     string  `json:"order_ref"`
}

// Record is the reconciliation outcome for one order.
type Record struct {
	OrderID       string  `json:"order_id"`
	OrderNumber   string  `json:"order_number"`
	Date          string  `json:"date"`
	Customer      string  `json:"customer"`
	Method        string  `json:"method"`
	Total         float64 `json:"total"`
	State         State   `json:"state"`
	StatusDetail  string  `json:"status_detail,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// Report is the full reconciliation output for one recomputation.
type Report struct {
	Records []Record      `json:"records"`
	Counts  map[State]int `json:"counts"`
	// Orphans are transactions whose referenced order is not in the
	// current order set (test charges, direct payment links).
	Orphans []Transaction `json:"orphans"`
}

// Service derives reconciliation state from orders, transactions and the
// session's manual cash override set.
type Service interface {
	NormalizeTransactions(raw []storefront.RawTransaction) []Transaction
	Reconcile(orders []orderdomain.Order, txs []Transaction, overrides map[string]struct{}) Report
}
