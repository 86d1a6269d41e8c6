// Package period resolves the operator's period selection into a concrete
// closed date range.
package period

import (
	"errors"
	"time"
)

// Preset names accepted by Resolve.
const (
	ThisMonth = "this_month"
	LastMonth = "last_month"
	ThisWeek  = "this_week"
	Custom    = "custom"
)

var ErrInvalidPeriod = errors.New("invalid_period")

// Range is a closed date range, both ends inclusive.
type Range struct {
	From time.Time
	To   time.Time
}

// Days is the period length in days, inclusive of both ends.
func (r Range) Days() int {
	from := truncate(r.From)
	to := truncate(r.To)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// Resolve maps a preset to a range relative to today. Custom presets must
// carry explicit bounds; weeks start on Monday.
func Resolve(preset string, today time.Time, from, to time.Time) (Range, error) {
	today = truncate(today)
	switch preset {
	case ThisMonth, "":
		return Range{From: firstOfMonth(today), To: today}, nil
	case LastMonth:
		lastDay := firstOfMonth(today).AddDate(0, 0, -1)
		return Range{From: firstOfMonth(lastDay), To: lastDay}, nil
	case ThisWeek:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return Range{From: today.AddDate(0, 0, -(weekday - 1)), To: today}, nil
	case Custom:
		if from.IsZero() || to.IsZero() || to.Before(from) {
			return Range{}, ErrInvalidPeriod
		}
		return Range{From: truncate(from), To: truncate(to)}, nil
	default:
		return Range{}, ErrInvalidPeriod
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
