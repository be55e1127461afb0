package engine

import (
	"fmt"
	"time"

	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/greenops"
)

// InsightType classifies an insight.
type InsightType string

// Insight types.
const (
	InsightTip         InsightType = "tip"
	InsightWarning     InsightType = "warning"
	InsightPositive    InsightType = "positive"
	InsightAchievement InsightType = "achievement"
)

const (
	// TransportInsightThreshold is the transportation total, in kg CO2e,
	// above which a transport tip is raised.
	TransportInsightThreshold = 50.0

	// DominantCategoryShare is the share of the total, in percent, above
	// which a single category raises a warning.
	DominantCategoryShare = 40.0
)

// Insight is a recommendation or observation derived from the ledger.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Action      string      `json:"action,omitempty"`
}

// GenerateInsights derives insights from entries (newest first) and goals as
// of now. The result is empty when there are no entries and no completed
// goals.
func GenerateInsights(entries []footprint.Entry, goals []footprint.Goal, now time.Time) []Insight {
	var insights []Insight

	if len(entries) > 0 {
		totals := CategoryTotals(entries)
		overall := SumFootprint(entries)

		if transport := totals[footprint.Transportation]; transport > TransportInsightThreshold {
			insights = append(insights, Insight{
				Type:  InsightTip,
				Title: "Transportation Improvement Opportunity",
				Description: fmt.Sprintf(
					"Your transportation emissions are %s. Consider using public transport more often.",
					greenops.FormatCarbonAmount(transport, true)),
				Action: "Try using public transport 3+ times per week",
			})
		}

		if hasCategory(entries, footprint.Energy) {
			insights = append(insights, Insight{
				Type:        InsightTip,
				Title:       "Energy Usage Tip",
				Description: "Small changes in energy usage can make a big difference in your carbon footprint.",
				Action:      "Switch to LED bulbs and unplug devices when not in use",
			})
		}

		if overall > 0 {
			for _, c := range footprint.Categories() {
				share := totals[c] / overall * PercentageMultiplier
				if share > DominantCategoryShare {
					insights = append(insights, Insight{
						Type:  InsightWarning,
						Title: c.Label() + " Dominates Your Footprint",
						Description: fmt.Sprintf("%s accounts for %.0f%% of your recorded emissions.",
							c.Label(), share),
						Action: "Review your " + c.String() + " activities for reductions",
					})
				}
			}
		}

		prev := now.AddDate(0, 0, -now.Day()+1).AddDate(0, -1, 0)
		current := MonthlyTotal(entries, now.Month(), now.Year())
		previous := MonthlyTotal(entries, prev.Month(), prev.Year())
		switch TrendDirection(current, previous) {
		case TrendDown:
			insights = append(insights, Insight{
				Type:  InsightPositive,
				Title: "Emissions Trending Down",
				Description: fmt.Sprintf("This month is %s compared with last month.",
					greenops.FormatPercent(PercentageChange(current, previous))),
			})
		case TrendUp:
			insights = append(insights, Insight{
				Type:  InsightWarning,
				Title: "Emissions Trending Up",
				Description: fmt.Sprintf("This month is %s compared with last month.",
					greenops.FormatPercent(PercentageChange(current, previous))),
				Action: "Check the category breakdown for the largest increase",
			})
		case TrendStable:
		}
	}

	for _, g := range goals {
		if g.Status == footprint.GoalCompleted {
			insights = append(insights, Insight{
				Type:        InsightAchievement,
				Title:       "Goal Achieved: " + g.Title,
				Description: fmt.Sprintf("You reached %.0f of %.0f %s.", g.Current, g.Target, g.Unit),
			})
		}
	}

	return insights
}

func hasCategory(entries []footprint.Entry, c footprint.Category) bool {
	for _, e := range entries {
		if e.Category == c {
			return true
		}
	}
	return false
}
