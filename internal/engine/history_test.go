package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/footprint"
)

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods() {
		got, err := ParsePeriod(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodAll, got)

	got, err = ParsePeriod(" Quarter ")
	require.NoError(t, err)
	assert.Equal(t, PeriodQuarter, got)
	assert.Equal(t, 90, got.Days())

	_, err = ParsePeriod("fortnight")
	require.Error(t, err)
}

func TestFilterEntries(t *testing.T) {
	commute := entryOn(t, "2026-10-17", footprint.Transportation, 5)
	commute.Subcategory = "Car (Petrol)"
	commute.Description = "Daily commute to work"

	beef := entryOn(t, "2026-10-11", footprint.Food, 8)
	beef.Subcategory = "Beef"

	old := entryOn(t, "2026-08-01", footprint.Transportation, 3)
	old.Subcategory = "Public Transport"

	ancient := entryOn(t, "2024-01-01", footprint.Energy, 1)
	ancient.Subcategory = "Electricity"

	entries := []footprint.Entry{commute, beef, old, ancient}

	tests := []struct {
		name   string
		filter HistoryFilter
		want   []string
	}{
		{name: "no filter", filter: HistoryFilter{}, want: []string{commute.ID, beef.ID, old.ID, ancient.ID}},
		{name: "category", filter: HistoryFilter{Category: footprint.Transportation}, want: []string{commute.ID, old.ID}},
		{name: "search subcategory", filter: HistoryFilter{Search: "BEEF"}, want: []string{beef.ID}},
		{name: "search description", filter: HistoryFilter{Search: "commute"}, want: []string{commute.ID}},
		{name: "week includes today and six days back", filter: HistoryFilter{Period: PeriodWeek, Now: testNow}, want: []string{commute.ID, beef.ID}},
		{name: "quarter", filter: HistoryFilter{Period: PeriodQuarter, Now: testNow}, want: []string{commute.ID, beef.ID, old.ID}},
		{name: "combined", filter: HistoryFilter{Category: footprint.Transportation, Search: "public", Period: PeriodYear, Now: testNow}, want: []string{old.ID}},
		{name: "no match", filter: HistoryFilter{Search: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEntries(entries, tt.filter)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestHistoryStats(t *testing.T) {
	assert.Equal(t, Stats{}, HistoryStats(nil))

	s := HistoryStats([]footprint.Entry{
		entryOn(t, "2026-10-01", footprint.Food, 2),
		entryOn(t, "2026-10-02", footprint.Food, 4),
	})
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 6.0, s.Total, 1e-9)
	assert.InDelta(t, 3.0, s.Average, 1e-9)
}
