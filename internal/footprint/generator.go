package footprint

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// DefaultMockDays is the trailing window the mock generator covers by default.
const DefaultMockDays = 90

// Mock description settings.
const (
	mockDescription            = "Daily commute to work"
	mockDescriptionProbability = 0.3
)

// GenerateMockEntries produces one synthetic entry per day for the trailing
// window of days ending at now, newest first.
//
// Every random draw comes from rng, so a fixed seed and clock reproduce the
// same ledger. The draw order per day is category, activity, amount, description.
func GenerateMockEntries(days int, rng *rand.Rand, now time.Time) ([]Entry, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, days)
	}
	if rng == nil {
		return nil, fmt.Errorf("mock generator: random source is required")
	}

	categories := Categories()
	today := DateOf(now)
	entries := make([]Entry, 0, days)

	for i := range days {
		category := categories[rng.Intn(len(categories))]
		options := category.SampledActivities()
		activity := options[rng.Intn(len(options))]

		span := activity.MaxAmount - activity.MinAmount
		amount := Round(activity.MinAmount+rng.Float64()*span, category.Precision())

		var description string
		if rng.Float64() < mockDescriptionProbability {
			description = mockDescription
		}

		entries = append(entries, Entry{
			ID:              fmt.Sprintf("entry-%d", i),
			Date:            today.AddDays(-i),
			Category:        category,
			Subcategory:     activity.Name,
			Amount:          amount,
			Unit:            activity.Unit,
			CarbonFootprint: CalculateFootprint(amount, activity.Factor),
			Description:     description,
		})
	}

	SortNewestFirst(entries)
	return entries, nil
}

// SortNewestFirst orders entries by date descending. Entries on the same
// date keep their relative order.
func SortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

// MockGoals returns the demo goal set, with deadlines at the end of now's year.
func MockGoals(now time.Time) []Goal {
	deadline := NewDate(now.Year(), time.December, 31) //nolint:mnd // Year end.
	return []Goal{
		{
			ID: "goal-1", Title: "Reduce Monthly Emissions",
			Target: 450, Current: 485, Unit: "kg CO2", Deadline: deadline,
			Category: GoalCategoryOverall, Status: GoalActive,
		},
		{
			ID: "goal-2", Title: "Use Public Transport 3x/week",
			Target: 12, Current: 8, Unit: "trips", Deadline: deadline,
			Category: Transportation.String(), Status: GoalActive,
		},
		{
			ID: "goal-3", Title: "Reduce Food Waste",
			Target: 25, Current: 35, Unit: "kg CO2", Deadline: deadline,
			Category: Food.String(), Status: GoalActive,
		},
		{
			ID: "goal-4", Title: "Energy Efficiency",
			Target: 100, Current: 95, Unit: "kg CO2", Deadline: deadline,
			Category: Energy.String(), Status: GoalCompleted,
		},
	}
}
