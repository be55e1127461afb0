package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/logging"
)

// entryFilterFlags holds the history filter flags shared by list and export.
type entryFilterFlags struct {
	category string
	search   string
	period   string
}

func (f *entryFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "",
		"Only entries in this category (transportation, energy, food, waste, consumption)")
	cmd.Flags().StringVar(&f.search, "search", "", "Case-insensitive match on activity or description")
	cmd.Flags().StringVar(&f.period, "period", "all", "Time window: all, week, month, quarter, or year")
}

// toFilter validates the flags and builds the history filter as of now.
func (f *entryFilterFlags) toFilter(now time.Time) (engine.HistoryFilter, error) {
	filter := engine.HistoryFilter{Search: f.search, Now: now}

	if f.category != "" && f.category != "all" {
		c, err := footprint.ParseCategory(f.category)
		if err != nil {
			return filter, fmt.Errorf("invalid --category: %w", err)
		}
		filter.Category = c
	}

	p, err := engine.ParsePeriod(f.period)
	if err != nil {
		return filter, fmt.Errorf("invalid --period: %w", err)
	}
	filter.Period = p
	return filter, nil
}

// ApplyEntryFilters returns the entries matching filter, preserving order.
// A warning is logged when a non-empty ledger has no matches.
func ApplyEntryFilters(
	ctx context.Context,
	entries []footprint.Entry,
	filter engine.HistoryFilter,
) []footprint.Entry {
	log := logging.FromContext(ctx)

	result := engine.FilterEntries(entries, filter)
	log.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "apply_filters").
		Str("category", filter.Category.String()).
		Str("search", filter.Search).
		Str("period", string(filter.Period)).
		Int("before", len(entries)).
		Int("after", len(result)).
		Msg("applied entry filters")

	if len(result) == 0 && len(entries) > 0 {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Int("original_count", len(entries)).
			Msg("no entries match filter criteria")
	}
	return result
}
