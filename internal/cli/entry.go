package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/cli/pagination"
	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/greenops"
	"github.com/rshade/carbontrack/internal/logging"
	"github.com/rshade/carbontrack/internal/store"
)

// ErrMissingEntryFlags is returned by `entry add` without the required flags
// in non-interactive mode.
var ErrMissingEntryFlags = errors.New("--category, --subcategory and --amount are required (or use --interactive)")

// entryAddParams holds the flags of `entry add`.
type entryAddParams struct {
	date        string
	category    string
	subcategory string
	amount      float64
	unit        string
	description string
	interactive bool
	output      string
}

// NewEntryAddCmd creates `entry add`, which records one activity and prints
// the computed footprint.
func NewEntryAddCmd() *cobra.Command {
	var params entryAddParams

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an activity",
		Long: `Record an activity and compute its carbon footprint from the emission
factor of its subcategory. Subcategories outside the catalogue use the
category's default factor.`,
		Example: `  # Log a 25 km car trip today
  carbontrack entry add --category transportation --subcategory "Car (Petrol)" --amount 25

  # Log last week's electricity with a note
  carbontrack entry add --category energy --subcategory Electricity --amount 42 \
    --date 2026-10-10 --description "weekly meter reading"

  # Fill in the entry with a form
  carbontrack entry add -i`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEntryAdd(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.date, "date", "", "Activity date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&params.category, "category", "", "Category: transportation, energy, food, waste, consumption")
	cmd.Flags().StringVar(&params.subcategory, "subcategory", "", "Activity, e.g. Car, Electricity, Beef")
	cmd.Flags().Float64Var(&params.amount, "amount", 0, "Quantity in the activity's unit")
	cmd.Flags().StringVar(&params.unit, "unit", "", "Unit label (defaults to the activity's unit)")
	cmd.Flags().StringVar(&params.description, "description", "", "Free-text note")
	cmd.Flags().BoolVarP(&params.interactive, "interactive", "i", false, "Fill in the entry with a form")
	addOutputFlag(cmd, &params.output)

	return cmd
}

func executeEntryAdd(cmd *cobra.Command, params entryAddParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}

	today := footprint.DateOf(nowFunc())
	var in footprint.EntryInput
	if params.interactive {
		fm := &entryFormModel{Date: today.String(), Description: params.description}
		if c, parseErr := footprint.ParseCategory(params.category); parseErr == nil {
			fm.Category = c
		} else {
			fm.Category = footprint.Transportation
		}
		fm.Subcategory = params.subcategory
		if in, err = runEntryForm(fm); err != nil {
			return err
		}
		in.Unit = params.unit
	} else {
		if in, err = params.toInput(cmd, today); err != nil {
			return err
		}
	}

	entry, err := footprint.NewEntry("", in)
	if err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	if _, known := entry.Category.LookupActivity(entry.Subcategory); !known {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "entry_add").
			Str("subcategory", entry.Subcategory).
			Float64("default_factor", entry.Category.DefaultFactor()).
			Msg("unknown activity, using the category default factor")
	}

	err = withLedger(ctx, func(p store.Provider) error {
		return p.AddEntry(ctx, entry)
	})
	audit(ctx, "entry.add", entry.ID, map[string]string{
		"category":    entry.Category.String(),
		"subcategory": entry.Subcategory,
		"amount":      strconv.FormatFloat(entry.Amount, 'f', -1, 64),
	}, err)
	if err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}

	log.Info().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "entry_add").
		Str("entry_id", entry.ID).
		Float64("footprint", entry.CarbonFootprint).
		Msg("entry recorded")

	out := cmd.OutOrStdout()
	if format != config.FormatTable {
		return renderJSON(out, entry)
	}
	_, err = fmt.Fprintf(out, "Recorded %s %s (%s %s) on %s: %s\nID: %s\n",
		entry.Category.Label(), entry.Subcategory,
		greenops.FormatFloat(entry.Amount, 1), entry.Unit, entry.Date,
		greenops.FormatCarbonAmount(entry.CarbonFootprint, true), entry.ID)
	return err
}

// toInput builds the entry input from flags.
func (p entryAddParams) toInput(cmd *cobra.Command, today footprint.Date) (footprint.EntryInput, error) {
	if p.category == "" || p.subcategory == "" || !cmd.Flags().Changed("amount") {
		return footprint.EntryInput{}, ErrMissingEntryFlags
	}
	c, err := footprint.ParseCategory(p.category)
	if err != nil {
		return footprint.EntryInput{}, fmt.Errorf("invalid --category: %w", err)
	}
	date := today
	if p.date != "" {
		if date, err = footprint.ParseDate(p.date); err != nil {
			return footprint.EntryInput{}, fmt.Errorf("invalid --date: %w", err)
		}
	}
	return footprint.EntryInput{
		Date:        date,
		Category:    c,
		Subcategory: p.subcategory,
		Amount:      p.amount,
		Unit:        p.unit,
		Description: p.description,
	}, nil
}

// entryListParams holds the flags of `entry list`.
type entryListParams struct {
	filters entryFilterFlags
	sort    string
	paging  pagination.Params
	output  string
}

// entryListResult is the JSON document of `entry list`.
type entryListResult struct {
	Entries    []footprint.Entry `json:"entries"`
	Stats      engine.Stats      `json:"stats"`
	Pagination *pagination.Meta  `json:"pagination,omitempty"`
}

// NewEntryListCmd creates `entry list`, the filtered history view.
func NewEntryListCmd() *cobra.Command {
	var params entryListParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "history"},
		Short:   "List recorded entries",
		Example: `  # Everything, newest first
  carbontrack entry list

  # Food entries from the last 30 days, largest first
  carbontrack entry list --category food --period month --sort footprint:desc

  # Second page of 20
  carbontrack entry list --page 2 --page-size 20 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEntryList(cmd, params)
		},
	}

	params.filters.register(cmd)
	cmd.Flags().StringVar(&params.sort, "sort", "date:desc",
		"Sort by field[:asc|desc]; fields: date, footprint, category, amount, subcategory")
	cmd.Flags().IntVar(&params.paging.Limit, "limit", pagination.DefaultLimit, "Maximum entries to show (0 = all)")
	cmd.Flags().IntVar(&params.paging.Offset, "offset", 0, "Entries to skip")
	cmd.Flags().IntVar(&params.paging.Page, "page", 0, "Page number (requires --page-size)")
	cmd.Flags().IntVar(&params.paging.PageSize, "page-size", 0, "Entries per page")
	addOutputFlag(cmd, &params.output)

	return cmd
}

func executeEntryList(cmd *cobra.Command, params entryListParams) error {
	ctx := cmd.Context()

	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}
	if err = params.paging.Validate(); err != nil {
		return err
	}
	field, order, err := pagination.ParseSort(params.sort)
	if err != nil {
		return err
	}
	filter, err := params.filters.toFilter(nowFunc())
	if err != nil {
		return err
	}

	var entries []footprint.Entry
	err = withLedger(ctx, func(p store.Provider) error {
		var listErr error
		entries, listErr = p.ListEntries(ctx)
		return listErr
	})
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	matched := ApplyEntryFilters(ctx, entries, filter)
	sorted, err := pagination.NewEntrySorter().Sort(matched, field, order)
	if err != nil {
		return err
	}
	stats := engine.HistoryStats(sorted)
	page := pagination.Apply(params.paging, sorted)

	out := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		result := entryListResult{Entries: page, Stats: stats}
		if result.Entries == nil {
			result.Entries = []footprint.Entry{}
		}
		if params.paging.IsEnabled() {
			meta := pagination.NewMeta(params.paging, len(sorted))
			result.Pagination = &meta
		}
		return renderJSON(out, result)
	case config.FormatNDJSON:
		return renderNDJSON(out, page)
	default:
		return renderEntryTable(out, page, stats)
	}
}

func renderEntryTable(w io.Writer, entries []footprint.Entry, stats engine.Stats) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCATEGORY\tACTIVITY\tAMOUNT\tCO2\tDESCRIPTION\tID")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\t%s\t%s\n",
			e.Date, e.Category.Label(), e.Subcategory,
			greenops.FormatFloat(e.Amount, 1), e.Unit,
			greenops.FormatCarbonAmount(e.CarbonFootprint, true),
			e.Description, e.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d entries, total %s, average %s per entry\n",
		stats.Count,
		greenops.FormatCarbonAmount(stats.Total, true),
		greenops.FormatCarbonAmount(stats.Average, true))
	return err
}

// NewEntryDeleteCmd creates `entry delete`.
func NewEntryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			err := withLedger(ctx, func(p store.Provider) error {
				return p.DeleteEntry(ctx, id)
			})
			audit(ctx, "entry.delete", id, nil, err)
			if err != nil {
				return fmt.Errorf("deleting entry: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", id)
			return err
		},
	}
}

// csvHeader is the column row of `entry export`.
//
//nolint:gochecknoglobals // Constant lookup table
var csvHeader = []string{"Date", "Category", "Subcategory", "Amount", "Unit", "CO2 Impact", "Description"}

// NewEntryExportCmd creates `entry export`, which writes the filtered
// history as CSV.
func NewEntryExportCmd() *cobra.Command {
	var (
		filters entryFilterFlags
		file    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as CSV",
		Example: `  # Export everything to stdout
  carbontrack entry export

  # Export this year's transport entries to a file
  carbontrack entry export --category transportation --period year --file transport.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			filter, err := filters.toFilter(nowFunc())
			if err != nil {
				return err
			}

			var entries []footprint.Entry
			err = withLedger(ctx, func(p store.Provider) error {
				var listErr error
				entries, listErr = p.ListEntries(ctx)
				return listErr
			})
			if err != nil {
				return fmt.Errorf("listing entries: %w", err)
			}
			entries = ApplyEntryFilters(ctx, entries, filter)

			if file == "" || file == "-" {
				return writeEntriesCSV(cmd.OutOrStdout(), entries)
			}
			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("creating %s: %w", file, err)
			}
			if err = writeEntriesCSV(f, entries); err != nil {
				_ = f.Close()
				return err
			}
			if err = f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", file, err)
			}
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", len(entries), file)
			return err
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout")
	return cmd
}

// writeEntriesCSV writes entries with csvHeader. CO2 Impact is kg CO2e with
// two decimals.
func writeEntriesCSV(w io.Writer, entries []footprint.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.Date.String(),
			e.Category.String(),
			e.Subcategory,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			e.Unit,
			strconv.FormatFloat(e.CarbonFootprint, 'f', footprint.FootprintPrecision, 64),
			e.Description,
		}
		if err := cw.Write(record); err != nil {
			if isBrokenPipe(err) {
				return nil
			}
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil && !isBrokenPipe(err) {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// activityRow is one catalogue line of `entry activities`.
type activityRow struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Factor   float64 `json:"factor"`
}

// NewEntryActivitiesCmd creates `entry activities`, which prints the emission
// factor catalogue.
func NewEntryActivitiesCmd() *cobra.Command {
	var (
		category string
		output   string
	)

	cmd := &cobra.Command{
		Use:     "activities",
		Aliases: []string{"factors"},
		Short:   "Show the emission factor catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			cats := footprint.Categories()
			if category != "" {
				c, parseErr := footprint.ParseCategory(category)
				if parseErr != nil {
					return fmt.Errorf("invalid --category: %w", parseErr)
				}
				cats = []footprint.Category{c}
			}

			var rows []activityRow
			for _, c := range cats {
				for _, a := range c.Activities() {
					rows = append(rows, activityRow{
						Category: c.String(), Name: a.Name, Unit: a.Unit, Factor: a.Factor,
					})
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case config.FormatJSON:
				return renderJSON(out, rows)
			case config.FormatNDJSON:
				return renderNDJSON(out, rows)
			}
			tw := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tACTIVITY\tUNIT\tKG CO2E PER UNIT")
			for _, c := range cats {
				for _, a := range c.Activities() {
					fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n",
						c.Icon(), c.Label(), a.Name, a.Unit, strconv.FormatFloat(a.Factor, 'f', -1, 64))
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only this category")
	addOutputFlag(cmd, &output)
	return cmd
}
