// Package footprint defines the carbon ledger data model.
//
// It holds the fixed activity categories and their emission factor tables,
// the Entry and Goal records, and the mock entry generator used for demos
// and tests. Every footprint value is expressed in kilograms of CO2e.
package footprint

import (
	"fmt"
	"strings"
)

// Category is one of the five fixed activity domains.
//
// The zero value is not a valid category; use ParseCategory or one of the
// exported constants.
type Category uint8

// Activity categories in canonical display order.
const (
	Transportation Category = iota + 1
	Energy
	Food
	Waste
	Consumption
)

// Fallback display attributes for strings that do not name a category.
const (
	FallbackColor = "#6b7280"
	FallbackIcon  = "Circle"
)

// categoryAttrs holds the fixed per-category metadata.
type categoryAttrs struct {
	id            string
	label         string
	color         string
	icon          string
	precision     int
	defaultFactor float64
}

//nolint:gochecknoglobals // Constant lookup table
var categoryTable = map[Category]categoryAttrs{
	Transportation: {"transportation", "Transportation", "#3b82f6", "Car", 1, 0.15},
	Energy:         {"energy", "Energy", "#f59e0b", "Zap", 1, 0.4},
	Food:           {"food", "Food", "#10b981", "Apple", 2, 5},
	Waste:          {"waste", "Waste", "#8b5cf6", "Trash2", 2, 0.4},
	Consumption:    {"consumption", "Consumption", "#ef4444", "ShoppingBag", 2, 15},
}

// Categories returns all categories in canonical order.
func Categories() []Category {
	return []Category{Transportation, Energy, Food, Waste, Consumption}
}

// ParseCategory resolves a category identifier such as "food" (case-insensitive).
func ParseCategory(s string) (Category, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if categoryTable[c].id == needle {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Valid reports whether c is one of the five categories.
func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// String returns the lowercase identifier, e.g. "transportation".
func (c Category) String() string {
	if attrs, ok := categoryTable[c]; ok {
		return attrs.id
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Label returns the capitalised display name.
func (c Category) Label() string {
	if attrs, ok := categoryTable[c]; ok {
		return attrs.label
	}
	return c.String()
}

// Color returns the hex display color for the category.
func (c Category) Color() string {
	if attrs, ok := categoryTable[c]; ok {
		return attrs.color
	}
	return FallbackColor
}

// Icon returns the symbolic icon identifier for the category.
func (c Category) Icon() string {
	if attrs, ok := categoryTable[c]; ok {
		return attrs.icon
	}
	return FallbackIcon
}

// Precision is the number of decimals generated amounts are rounded to.
func (c Category) Precision() int {
	return categoryTable[c].precision
}

// DefaultFactor is the kg CO2e per unit applied when a subcategory is not in
// the category's activity table.
func (c Category) DefaultFactor() float64 {
	if attrs, ok := categoryTable[c]; ok {
		return attrs.defaultFactor
	}
	return 1
}

// MarshalText encodes the category as its identifier.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category identifier.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ColorFor resolves a free-form category string to its display color,
// falling back to FallbackColor.
func ColorFor(s string) string {
	c, err := ParseCategory(s)
	if err != nil {
		return FallbackColor
	}
	return c.Color()
}

// IconFor resolves a free-form category string to its icon identifier,
// falling back to FallbackIcon.
func IconFor(s string) string {
	c, err := ParseCategory(s)
	if err != nil {
		return FallbackIcon
	}
	return c.Icon()
}
