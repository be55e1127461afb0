package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/rshade/carbontrack/internal/footprint"
)

// Period is a history window counted back from today.
type Period string

// History periods.
const (
	PeriodAll     Period = "all"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

var periodDays = map[Period]int{ //nolint:gochecknoglobals // Constant lookup table
	PeriodWeek:    7,
	PeriodMonth:   30,
	PeriodQuarter: 90,
	PeriodYear:    365,
}

// Periods returns every period in widening order.
func Periods() []Period {
	return []Period{PeriodAll, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}
}

// ParsePeriod parses a period name. An empty string is PeriodAll.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if p == "" || p == PeriodAll {
		return PeriodAll, nil
	}
	if _, ok := periodDays[p]; !ok {
		return "", fmt.Errorf("unknown period %q (want all, week, month, quarter or year)", s)
	}
	return p, nil
}

// Days returns the window length of p, or 0 for PeriodAll.
func (p Period) Days() int {
	return periodDays[p]
}

// HistoryFilter selects entries for the history view. Zero fields match
// everything.
type HistoryFilter struct {
	Category footprint.Category
	Search   string
	Period   Period
	Now      time.Time
}

// Matches reports whether e passes the filter.
func (f HistoryFilter) Matches(e footprint.Entry) bool {
	if f.Category.Valid() && e.Category != f.Category {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(e.Subcategory), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			return false
		}
	}
	if days := f.Period.Days(); days > 0 {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		cutoff := footprint.DateOf(now).AddDays(-(days - 1))
		if e.Date.Before(cutoff) {
			return false
		}
	}
	return true
}

// FilterEntries returns the entries matching f, preserving order.
func FilterEntries(entries []footprint.Entry, f HistoryFilter) []footprint.Entry {
	out := make([]footprint.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Stats summarises a set of history entries.
type Stats struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

// HistoryStats returns the count, total and per-entry average of entries.
func HistoryStats(entries []footprint.Entry) Stats {
	s := Stats{Count: len(entries), Total: SumFootprint(entries)}
	if s.Count > 0 {
		s.Average = s.Total / float64(s.Count)
	}
	return s
}
