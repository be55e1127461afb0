package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/carbontrack/internal/footprint"
)

// Entry sort fields.
const (
	FieldDate        = "date"
	FieldFootprint   = "footprint"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldSubcategory = "subcategory"
)

// EntrySorter orders ledger entries by a named field.
type EntrySorter struct {
	compare map[string]func(a, b footprint.Entry) int
}

// NewEntrySorter returns a sorter over the date, footprint, category,
// amount and subcategory fields.
func NewEntrySorter() *EntrySorter {
	return &EntrySorter{
		compare: map[string]func(a, b footprint.Entry) int{
			FieldDate: func(a, b footprint.Entry) int {
				return a.Date.Time().Compare(b.Date.Time())
			},
			FieldFootprint: func(a, b footprint.Entry) int {
				return cmp.Compare(a.CarbonFootprint, b.CarbonFootprint)
			},
			FieldCategory: func(a, b footprint.Entry) int {
				return cmp.Compare(a.Category, b.Category)
			},
			FieldAmount: func(a, b footprint.Entry) int {
				return cmp.Compare(a.Amount, b.Amount)
			},
			FieldSubcategory: func(a, b footprint.Entry) int {
				return strings.Compare(strings.ToLower(a.Subcategory), strings.ToLower(b.Subcategory))
			},
		},
	}
}

// IsValidField reports whether field can be sorted on.
func (s *EntrySorter) IsValidField(field string) bool {
	_, ok := s.compare[field]
	return ok
}

// ValidFields returns the sortable fields in alphabetical order.
func (s *EntrySorter) ValidFields() []string {
	fields := make([]string, 0, len(s.compare))
	for f := range s.compare {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// Sort returns a sorted copy of entries. Equal elements keep their input
// order in both directions.
func (s *EntrySorter) Sort(entries []footprint.Entry, field, order string) ([]footprint.Entry, error) {
	compare, ok := s.compare[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field,
			strings.Join(s.ValidFields(), ", "))
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b footprint.Entry) int {
		if order == SortOrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted, nil
}
