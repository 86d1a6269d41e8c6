package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
)

func TestState_ResetDatasetClearsOverrides(t *testing.T) {
	s := newState(feesdomain.DefaultSchedule())

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	s.ResetDataset(from, to, 31, []orderdomain.Order{{ID: "1"}}, nil)
	s.SetOverride("1")
	assert.Len(t, s.Overrides(), 1)

	s.ResetDataset(from, to, 31, []orderdomain.Order{{ID: "1"}}, nil)
	assert.Empty(t, s.Overrides())

	_, _, days, loaded := s.Dataset()
	assert.True(t, loaded)
	assert.Equal(t, 31, days)
}

func TestState_ScheduleAndSettingsSurviveNewSearch(t *testing.T) {
	s := newState(feesdomain.DefaultSchedule())

	adjusted := feesdomain.DefaultSchedule()
	adjusted.BaseRate = 0.05
	s.SetSchedule(adjusted)

	settings := s.Settings()
	settings.TaxPct = 21
	s.SetSettings(settings)

	s.ResetDataset(time.Time{}, time.Time{}, 0, []orderdomain.Order{}, nil)
	assert.Equal(t, 0.05, s.Schedule().BaseRate)
	assert.Equal(t, 21.0, s.Settings().TaxPct)
}

func TestState_OverridesCopyIsDetached(t *testing.T) {
	s := newState(feesdomain.DefaultSchedule())
	s.SetOverride("1")

	copied := s.Overrides()
	copied["2"] = struct{}{}
	assert.Len(t, s.Overrides(), 1)

	s.ClearOverride("1")
	s.ClearOverride("1") // idempotent
	assert.Empty(t, s.Overrides())

	s.ReplaceOverrides([]string{"a", "b"})
	assert.Len(t, s.Overrides(), 2)
}
