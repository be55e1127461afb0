package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rshade/carbontrack/internal/footprint"
)

// entryFormModel holds the raw values bound to the entry form fields.
type entryFormModel struct {
	Category    footprint.Category
	Subcategory string
	Amount      string
	Date        string
	Description string
}

// toInput parses the form values into an EntryInput.
func (fm *entryFormModel) toInput() (footprint.EntryInput, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(fm.Amount), 64)
	if err != nil {
		return footprint.EntryInput{}, fmt.Errorf("amount must be a number, got %q", fm.Amount)
	}
	date, err := footprint.ParseDate(strings.TrimSpace(fm.Date))
	if err != nil {
		return footprint.EntryInput{}, err
	}
	return footprint.EntryInput{
		Date:        date,
		Category:    fm.Category,
		Subcategory: fm.Subcategory,
		Amount:      amount,
		Description: fm.Description,
	}, nil
}

func categoryOptions() []huh.Option[footprint.Category] {
	cats := footprint.Categories()
	opts := make([]huh.Option[footprint.Category], 0, len(cats))
	for _, c := range cats {
		opts = append(opts, huh.NewOption(c.Label(), c))
	}
	return opts
}

func activityOptions(c footprint.Category) []huh.Option[string] {
	acts := c.Activities()
	opts := make([]huh.Option[string], 0, len(acts))
	for _, a := range acts {
		label := fmt.Sprintf("%s (%.2f kg CO2e/%s)", a.Name, a.Factor, a.Unit)
		opts = append(opts, huh.NewOption(label, a.Name))
	}
	return opts
}

// newEntryForm builds the interactive entry form. The activity list follows
// the selected category.
func newEntryForm(fm *entryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[footprint.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&fm.Category),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Activity").
				OptionsFunc(func() []huh.Option[string] {
					return activityOptions(fm.Category)
				}, &fm.Category).
				Value(&fm.Subcategory),
			huh.NewInput().
				TitleFunc(func() string {
					if a, ok := fm.Category.LookupActivity(fm.Subcategory); ok {
						return "Amount (" + a.Unit + ")"
					}
					return "Amount"
				}, &fm.Subcategory).
				Value(&fm.Amount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return errors.New("amount must be a number")
					}
					if v < 0 {
						return errors.New("amount cannot be negative")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := footprint.ParseDate(strings.TrimSpace(s))
					return err
				}),
			huh.NewInput().
				Title("Description").
				Description("Optional").
				Value(&fm.Description),
		),
	)
}

// runEntryForm shows the entry form, prefilled with fm, and parses the result.
func runEntryForm(fm *entryFormModel) (footprint.EntryInput, error) {
	if err := newEntryForm(fm).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return footprint.EntryInput{}, errors.New("entry cancelled")
		}
		return footprint.EntryInput{}, fmt.Errorf("entry form: %w", err)
	}
	return fm.toInput()
}
