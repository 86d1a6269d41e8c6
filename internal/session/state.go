// Package session holds the per-operator working state: the loaded period
// dataset, the manual cash override set, the adjustable fee schedule and
// the what-if inputs. One independent state instance exists per session;
// nothing here is shared across sessions.
package session

import (
	"sync"
	"time"

	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
	inventorydomain "github.com/smallbiznis/storewatch/internal/inventory/domain"
	"github.com/smallbiznis/storewatch/internal/notify"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	recdomain "github.com/smallbiznis/storewatch/internal/reconciliation/domain"
	velocitydomain "github.com/smallbiznis/storewatch/internal/velocity/domain"
)

// Settings are the operator-adjustable inputs that live alongside the
// dataset. They are not persisted unless explicitly saved.
type Settings struct {
	ExchangeRate float64 `json:"exchange_rate"`
	TaxPct       float64 `json:"tax_pct"`
	AdSpend      float64 `json:"ad_spend"`

	AlertThresholdDays int `json:"alert_threshold_days"`
	LeadTimeDays       int `json:"lead_time_days"`

	MessageTemplate string `json:"message_template"`
}

func DefaultSettings() Settings {
	params := velocitydomain.DefaultParams()
	return Settings{
		ExchangeRate:       1200,
		TaxPct:             10.5,
		AlertThresholdDays: params.AlertThresholdDays,
		LeadTimeDays:       params.LeadTimeDays,
		MessageTemplate:    notify.DefaultTemplate,
	}
}

// State is one session's working set. The mutex covers concurrent requests
// reusing the same cookie; logically there is one actor per session.
type State struct {
	mu sync.Mutex

	from, to time.Time
	days     int

	orders       []orderdomain.Order
	transactions []recdomain.Transaction
	stock        []inventorydomain.Row
	stockLoaded  bool

	overrides map[string]struct{}
	schedule  feesdomain.Schedule
	settings  Settings
}

func newState(schedule feesdomain.Schedule) *State {
	return &State{
		overrides: make(map[string]struct{}),
		schedule:  schedule,
		settings:  DefaultSettings(),
	}
}

// ResetDataset installs a freshly retrieved period dataset and clears the
// override set, the explicit new-search semantics. Adjusted schedule and
// settings survive a new search.
func (s *State) ResetDataset(from, to time.Time, days int, orders []orderdomain.Order, txs []recdomain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.from, s.to = from, to
	s.days = days
	s.orders = orders
	s.transactions = txs
	s.overrides = make(map[string]struct{})
}

func (s *State) Dataset() (orders []orderdomain.Order, txs []recdomain.Transaction, days int, loaded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders, s.transactions, s.days, s.orders != nil
}

func (s *State) Period() (time.Time, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.from, s.to
}

func (s *State) SetStock(rows []inventorydomain.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = rows
	s.stockLoaded = true
}

func (s *State) Stock() ([]inventorydomain.Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock, s.stockLoaded
}

// SetOverride marks an order as manual cash. Idempotent.
func (s *State) SetOverride(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[orderID] = struct{}{}
}

// ClearOverride unmarks an order. Idempotent.
func (s *State) ClearOverride(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, orderID)
}

// Overrides returns a copy of the override set.
func (s *State) Overrides() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{}, len(s.overrides))
	for id := range s.overrides {
		out[id] = struct{}{}
	}
	return out
}

// ReplaceOverrides swaps in a saved override set.
func (s *State) ReplaceOverrides(orderIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		s.overrides[id] = struct{}{}
	}
}

func (s *State) Schedule() feesdomain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule
}

func (s *State) SetSchedule(schedule feesdomain.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = schedule
}

func (s *State) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *State) SetSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *State) VelocityParams() velocitydomain.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return velocitydomain.Params{
		AlertThresholdDays: s.settings.AlertThresholdDays,
		LeadTimeDays:       s.settings.LeadTimeDays,
	}
}
