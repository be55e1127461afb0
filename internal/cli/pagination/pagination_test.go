package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/footprint"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "zero value", params: Params{}},
		{name: "offset mode", params: Params{Limit: 10, Offset: 20}},
		{name: "page mode", params: Params{Page: 2, PageSize: 10}},
		{name: "negative limit", params: Params{Limit: -1}, wantErr: ErrNegativeValue},
		{name: "negative page", params: Params{Page: -1}, wantErr: ErrNegativeValue},
		{name: "mixed modes", params: Params{Page: 1, PageSize: 5, Offset: 10}, wantErr: ErrMixedPaginationModes},
		{name: "page size alone", params: Params{PageSize: 5}, wantErr: ErrPageSizeWithoutPage},
		{name: "page alone", params: Params{Page: 2}, wantErr: ErrPageWithoutPageSize},
		{name: "page size too large", params: Params{Page: 1, PageSize: MaxPageSize + 1}, wantErr: ErrPageSizeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	tests := []struct {
		name   string
		params Params
		want   []int
	}{
		{name: "no paging", params: Params{}, want: items},
		{name: "limit", params: Params{Limit: 3}, want: []int{1, 2, 3}},
		{name: "offset and limit", params: Params{Offset: 5, Limit: 3}, want: []int{6, 7}},
		{name: "offset past end", params: Params{Offset: 10}, want: []int{}},
		{name: "second page", params: Params{Page: 2, PageSize: 3}, want: []int{4, 5, 6}},
		{name: "page past end clamps", params: Params{Page: 9, PageSize: 3}, want: []int{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.params, items))
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, PageSize: 3}, 7)
	assert.Equal(t, Meta{
		CurrentPage: 2, PageSize: 3, TotalPages: 3, TotalItems: 7,
		HasPrevious: true, HasNext: true,
	}, meta)

	meta = NewMeta(Params{}, 4)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr      string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{expr: "", wantField: "date", wantOrder: "desc"},
		{expr: "footprint", wantField: "footprint", wantOrder: "desc"},
		{expr: "Amount:ASC", wantField: "amount", wantOrder: "asc"},
		{expr: "a:b:c", wantErr: ErrInvalidSortFormat},
		{expr: ":asc", wantErr: ErrEmptySortField},
		{expr: "date:up", wantErr: ErrInvalidSortOrder},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			field, order, err := ParseSort(tt.expr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestEntrySorter(t *testing.T) {
	day := func(s string) footprint.Date {
		d, err := footprint.ParseDate(s)
		require.NoError(t, err)
		return d
	}
	entries := []footprint.Entry{
		{ID: "a", Date: day("2026-10-02"), Category: footprint.Food, Subcategory: "beef", CarbonFootprint: 5},
		{ID: "b", Date: day("2026-10-01"), Category: footprint.Transportation, Subcategory: "Car", CarbonFootprint: 9},
		{ID: "c", Date: day("2026-10-02"), Category: footprint.Energy, Subcategory: "alpha", CarbonFootprint: 5},
	}
	ids := func(es []footprint.Entry) []string {
		out := make([]string, 0, len(es))
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	s := NewEntrySorter()
	assert.Equal(t, []string{"amount", "category", "date", "footprint", "subcategory"}, s.ValidFields())

	sorted, err := s.Sort(entries, FieldFootprint, SortOrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(sorted), "ties keep input order")

	sorted, err = s.Sort(entries, FieldDate, SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(sorted))

	sorted, err = s.Sort(entries, FieldSubcategory, SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(sorted))

	sorted, err = s.Sort(entries, FieldCategory, SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids(sorted))

	_, err = s.Sort(entries, "cost", SortOrderAsc)
	require.ErrorIs(t, err, ErrInvalidSortField)
	assert.Equal(t, "a", entries[0].ID, "input is not modified")
}
