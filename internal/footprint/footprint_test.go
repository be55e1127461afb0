package footprint

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "transportation", want: Transportation},
		{in: "Energy", want: Energy},
		{in: "  food ", want: Food},
		{in: "waste", want: Waste},
		{in: "consumption", want: Consumption},
		{in: "overall", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryAttributes(t *testing.T) {
	tests := []struct {
		category Category
		color    string
		icon     string
	}{
		{Transportation, "#3b82f6", "Car"},
		{Energy, "#f59e0b", "Zap"},
		{Food, "#10b981", "Apple"},
		{Waste, "#8b5cf6", "Trash2"},
		{Consumption, "#ef4444", "ShoppingBag"},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.color, tt.category.Color())
			assert.Equal(t, tt.icon, tt.category.Icon())
			assert.Equal(t, tt.color, ColorFor(tt.category.String()))
			assert.Equal(t, tt.icon, IconFor(tt.category.String()))
		})
	}

	t.Run("fallback", func(t *testing.T) {
		assert.Equal(t, "#6b7280", ColorFor("gardening"))
		assert.Equal(t, "Circle", IconFor("gardening"))
		assert.Equal(t, FallbackColor, Category(0).Color())
		assert.False(t, Category(0).Valid())
	})
}

func TestCategoryJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		C Category `json:"c"`
	}{C: Waste})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"waste"}`, string(data))

	var decoded struct {
		C Category `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"c":"food"}`), &decoded))
	assert.Equal(t, Food, decoded.C)

	err = json.Unmarshal([]byte(`{"c":"space"}`), &decoded)
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestEmissionFactor(t *testing.T) {
	assert.InDelta(t, 0.17, Transportation.EmissionFactor("Car (Petrol)"), 1e-9)
	assert.InDelta(t, 0.17, Transportation.EmissionFactor("car_petrol"), 1e-9)
	assert.InDelta(t, 2.0, Consumption.EmissionFactor("books_media"), 1e-9)
	assert.InDelta(t, 1.2, Waste.EmissionFactor("E-waste"), 1e-9)
	// Unknown subcategory falls back to the category default.
	assert.InDelta(t, 0.15, Transportation.EmissionFactor("Hovercraft"), 1e-9)
	assert.InDelta(t, 15.0, Consumption.EmissionFactor("Yacht"), 1e-9)
}

func TestNewEntry(t *testing.T) {
	date := NewDate(2026, time.March, 4)

	t.Run("computes footprint and default unit", func(t *testing.T) {
		e, err := NewEntry("", EntryInput{
			Date: date, Category: Food, Subcategory: "Beef", Amount: 0.35,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "kg", e.Unit)
		assert.InDelta(t, 9.45, e.CarbonFootprint, 1e-9)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		e, err := NewEntry("x", EntryInput{
			Date: date, Category: Transportation, Subcategory: "Car (Petrol)", Amount: 12.3,
		})
		require.NoError(t, err)
		assert.InDelta(t, 2.09, e.CarbonFootprint, 1e-9)
	})

	t.Run("keeps explicit unit", func(t *testing.T) {
		e, err := NewEntry("x", EntryInput{
			Date: date, Category: Energy, Subcategory: "Electricity", Amount: 10, Unit: "kwh",
		})
		require.NoError(t, err)
		assert.Equal(t, "kwh", e.Unit)
		assert.InDelta(t, 5.0, e.CarbonFootprint, 1e-9)
	})

	errCases := []struct {
		name string
		in   EntryInput
		want error
	}{
		{"invalid category", EntryInput{Date: date, Subcategory: "Beef", Amount: 1}, ErrInvalidCategory},
		{"empty subcategory", EntryInput{Date: date, Category: Food, Amount: 1}, ErrEmptySubcategory},
		{"negative amount", EntryInput{Date: date, Category: Food, Subcategory: "Beef", Amount: -1}, ErrNegativeAmount},
		{"nan amount", EntryInput{Date: date, Category: Food, Subcategory: "Beef", Amount: math.NaN()}, ErrNegativeAmount},
		{"missing date", EntryInput{Category: Food, Subcategory: "Beef", Amount: 1}, ErrInvalidDate},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry("x", tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.March, 1), d.AddDays(1))
	assert.Equal(t, "2026-02-28", d.String())
	assert.Equal(t, 3, NewDate(2026, time.March, 3).DaysSince(d))
	assert.True(t, d.Before(d.AddDays(1)))

	local := time.Date(2026, time.July, 9, 23, 30, 0, 0, time.FixedZone("x", -5*3600))
	assert.Equal(t, NewDate(2026, time.July, 9), DateOf(local))

	_, err = ParseDate("09/07/2026")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestGoalValidate(t *testing.T) {
	valid := Goal{
		Title: "Cut flights", Target: 100, Current: 20, Unit: "kg CO2",
		Deadline: NewDate(2026, time.December, 31), Category: "transportation", Status: GoalActive,
	}
	require.NoError(t, valid.Validate())

	overall := valid
	overall.Category = GoalCategoryOverall
	require.NoError(t, overall.Validate())
	assert.True(t, overall.IsOverall())

	for name, mutate := range map[string]func(*Goal){
		"missing title":    func(g *Goal) { g.Title = " " },
		"negative target":  func(g *Goal) { g.Target = -1 },
		"missing deadline": func(g *Goal) { g.Deadline = Date{} },
		"bad category":     func(g *Goal) { g.Category = "gardening" },
		"bad status":       func(g *Goal) { g.Status = "paused" },
	} {
		t.Run(name, func(t *testing.T) {
			g := valid
			mutate(&g)
			require.ErrorIs(t, g.Validate(), ErrInvalidGoal)
		})
	}
}
