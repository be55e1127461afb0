package footprint

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // Fixed clock for deterministic tests.
var testNow = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

func TestGenerateMockEntries(t *testing.T) {
	entries, err := GenerateMockEntries(DefaultMockDays, rand.New(rand.NewSource(42)), testNow)
	require.NoError(t, err)
	require.Len(t, entries, 90)

	today := DateOf(testNow)
	assert.Equal(t, today, entries[0].Date)
	assert.Equal(t, today.AddDays(-89), entries[89].Date)

	for i, e := range entries {
		require.NoError(t, e.Validate())
		assert.True(t, e.Category.Valid(), "entry %d category", i)
		assert.GreaterOrEqual(t, e.CarbonFootprint, 0.0)

		activity, ok := e.Category.LookupActivity(e.Subcategory)
		require.True(t, ok, "entry %d subcategory %q", i, e.Subcategory)
		assert.True(t, activity.Sampled)
		assert.Equal(t, activity.Unit, e.Unit)
		assert.GreaterOrEqual(t, e.Amount, activity.MinAmount)
		assert.LessOrEqual(t, e.Amount, activity.MaxAmount)
		assert.InDelta(t, CalculateFootprint(e.Amount, activity.Factor), e.CarbonFootprint, 1e-9)

		if e.Description != "" {
			assert.Equal(t, "Daily commute to work", e.Description)
		}
		if i > 0 {
			assert.False(t, e.Date.After(entries[i-1].Date), "entries must be newest first")
		}
	}
}

func TestGenerateMockEntriesDeterministic(t *testing.T) {
	a, err := GenerateMockEntries(30, rand.New(rand.NewSource(7)), testNow)
	require.NoError(t, err)
	b, err := GenerateMockEntries(30, rand.New(rand.NewSource(7)), testNow)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateMockEntriesInvalidWindow(t *testing.T) {
	_, err := GenerateMockEntries(0, rand.New(rand.NewSource(1)), testNow)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = GenerateMockEntries(5, nil, testNow)
	require.Error(t, err)
}

func TestSortNewestFirstStable(t *testing.T) {
	d := NewDate(2026, time.May, 1)
	entries := []Entry{
		{ID: "a", Date: d},
		{ID: "b", Date: d.AddDays(1)},
		{ID: "c", Date: d},
	}
	SortNewestFirst(entries)
	assert.Equal(t, []string{"b", "a", "c"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
}

func TestMockGoals(t *testing.T) {
	goals := MockGoals(testNow)
	require.Len(t, goals, 4)
	for _, g := range goals {
		require.NoError(t, g.Validate())
		assert.Equal(t, NewDate(2026, time.December, 31), g.Deadline)
	}
	assert.Equal(t, GoalCompleted, goals[3].Status)
}
