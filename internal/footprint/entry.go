package footprint

import (
	"fmt"
	"math"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// FootprintPrecision is the number of decimals footprints are rounded to.
const FootprintPrecision = 2

// Entry is one recorded activity with its emissions estimate.
// Entries are values: an update replaces the whole record.
type Entry struct {
	ID          string   `json:"id"                    yaml:"id"`
	Date        Date     `json:"date"                  yaml:"date"`
	Category    Category `json:"category"              yaml:"category"`
	Subcategory string   `json:"subcategory"           yaml:"subcategory"`
	Amount      float64  `json:"amount"                yaml:"amount"`
	Unit        string   `json:"unit"                  yaml:"unit"`

	// CarbonFootprint is kg CO2e, amount times the subcategory's emission factor.
	CarbonFootprint float64 `json:"carbon_footprint"      yaml:"carbon_footprint"`
	Description     string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// EntryInput carries the user-supplied fields of a new entry.
type EntryInput struct {
	Date        Date
	Category    Category
	Subcategory string
	Amount      float64
	// Unit defaults to the catalogued unit of the subcategory when empty.
	Unit        string
	Description string
}

// NewEntry validates in and computes the entry's carbon footprint.
// An empty id is replaced with a fresh ULID.
func NewEntry(id string, in EntryInput) (Entry, error) {
	if !in.Category.Valid() {
		return Entry{}, fmt.Errorf("%w: %d", ErrInvalidCategory, uint8(in.Category))
	}
	sub := strings.TrimSpace(in.Subcategory)
	if sub == "" {
		return Entry{}, ErrEmptySubcategory
	}
	if in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return Entry{}, fmt.Errorf("%w: got %v", ErrNegativeAmount, in.Amount)
	}
	if in.Date.IsZero() {
		return Entry{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		if a, ok := in.Category.LookupActivity(sub); ok {
			unit = a.Unit
		}
	}
	if id == "" {
		id = NewID()
	}

	return Entry{
		ID:              id,
		Date:            in.Date,
		Category:        in.Category,
		Subcategory:     sub,
		Amount:          in.Amount,
		Unit:            unit,
		CarbonFootprint: CalculateFootprint(in.Amount, in.Category.EmissionFactor(sub)),
		Description:     strings.TrimSpace(in.Description),
	}, nil
}

// Validate checks the entry invariants: a valid category, a label, and a
// non-negative finite amount and footprint.
func (e Entry) Validate() error {
	if !e.Category.Valid() {
		return fmt.Errorf("entry %s: %w", e.ID, ErrInvalidCategory)
	}
	if strings.TrimSpace(e.Subcategory) == "" {
		return fmt.Errorf("entry %s: %w", e.ID, ErrEmptySubcategory)
	}
	for _, v := range []float64{e.Amount, e.CarbonFootprint} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("entry %s: %w", e.ID, ErrNegativeAmount)
		}
	}
	return nil
}

// CalculateFootprint returns amount*factor rounded half-up to two decimals.
// The product is computed in decimal so 0.1*3 yields 0.3 exactly.
func CalculateFootprint(amount, factor float64) float64 {
	product := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(factor))
	return product.Round(FootprintPrecision).InexactFloat64()
}

// Round rounds v half-up to the given number of decimals.
func Round(v float64, places int) float64 {
	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64() //nolint:gosec // places is small
}

// NewID returns a new lexically sortable identifier.
func NewID() string {
	return ulid.Make().String()
}
