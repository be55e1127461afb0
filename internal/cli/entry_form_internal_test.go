package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
)

//nolint:gochecknoglobals // Test fixture
var testClock = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

func TestEntryFormModel_ToInput(t *testing.T) {
	fm := &entryFormModel{
		Category:    footprint.Food,
		Subcategory: "Dairy",
		Amount:      " 0.4 ",
		Date:        "2026-10-01",
		Description: "milk",
	}
	in, err := fm.toInput()
	require.NoError(t, err)
	assert.Equal(t, footprint.Food, in.Category)
	assert.InDelta(t, 0.4, in.Amount, 1e-9)
	assert.Equal(t, footprint.NewDate(2026, 10, 1), in.Date)

	fm.Amount = "lots"
	_, err = fm.toInput()
	require.Error(t, err)

	fm.Amount = "1"
	fm.Date = "yesterday"
	_, err = fm.toInput()
	require.ErrorIs(t, err, footprint.ErrInvalidDate)
}

func TestActivityOptionsFollowCategory(t *testing.T) {
	for _, c := range footprint.Categories() {
		opts := activityOptions(c)
		require.Len(t, opts, len(c.Activities()), c.String())
		for i, a := range c.Activities() {
			assert.Equal(t, a.Name, opts[i].Value)
		}
	}
	assert.Len(t, categoryOptions(), len(footprint.Categories()))
}

func TestEntryFilterFlags_ToFilter(t *testing.T) {
	tests := []struct {
		name    string
		flags   entryFilterFlags
		want    engine.HistoryFilter
		wantErr bool
	}{
		{
			name:  "defaults",
			flags: entryFilterFlags{period: "all"},
			want:  engine.HistoryFilter{Period: engine.PeriodAll},
		},
		{
			name:  "all category is no filter",
			flags: entryFilterFlags{category: "all", period: "week", search: "bus"},
			want:  engine.HistoryFilter{Period: engine.PeriodWeek, Search: "bus"},
		},
		{
			name:  "category",
			flags: entryFilterFlags{category: "Waste", period: "year"},
			want:  engine.HistoryFilter{Category: footprint.Waste, Period: engine.PeriodYear},
		},
		{name: "bad category", flags: entryFilterFlags{category: "x", period: "all"}, wantErr: true},
		{name: "bad period", flags: entryFilterFlags{period: "decade"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.toFilter(testClock)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.want.Now = testClock
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryAddExample_UsesCataloguedActivities(t *testing.T) {
	example := NewEntryAddCmd().Example
	require.Contains(t, example, `--subcategory "Car (Petrol)"`)

	_, ok := footprint.Transportation.LookupActivity("Car (Petrol)")
	assert.True(t, ok)
	_, ok = footprint.Energy.LookupActivity("Electricity")
	assert.True(t, ok)
}
