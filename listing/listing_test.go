package listing_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/quote-admin/listing"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name    string
	Qty     int
	Price   float64
	Active  bool
	Created time.Time
}

var itemFields = listing.Fields[item]{
	"name":    func(i item) any { return i.Name },
	"qty":     func(i item) any { return i.Qty },
	"price":   func(i item) any { return i.Price },
	"active":  func(i item) any { return i.Active },
	"created": func(i item) any { return i.Created },
}

func names(items []item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}
	return out
}

func fixtures() []item {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []item{
		{Name: "Bracket", Qty: 4, Price: 2.5, Active: true, Created: base.Add(2 * time.Hour)},
		{Name: "anchor bolt", Qty: 10, Price: 0.4, Active: false, Created: base},
		{Name: "Cable tray", Qty: 4, Price: 18, Active: true, Created: base.Add(time.Hour)},
		{Name: "Bearing", Qty: 1, Price: 7.25, Active: false, Created: base.Add(3 * time.Hour)},
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  listing.Query
	}{
		{"defaults", "", listing.Query{Page: 1, PageSize: 10}},
		{"all set", "page=3&pageSize=25&sort=name&order=DESC&search=+bolt+", listing.Query{Page: 3, PageSize: 25, SortBy: "name", Desc: true, Search: "bolt"}},
		{"invalid numbers", "page=x&pageSize=-4", listing.Query{Page: 1, PageSize: 10}},
		{"page size clamped", "pageSize=1000", listing.Query{Page: 1, PageSize: listing.MaxPageSize}},
		{"asc order", "order=asc", listing.Query{Page: 1, PageSize: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			require.Equal(t, tt.want, listing.ParseQuery(values))
		})
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	got := listing.Filter(fixtures(), "E", itemFields)
	require.Equal(t, []string{"Bracket", "Cable tray", "Bearing"}, names(got))

	require.Len(t, listing.Filter(fixtures(), "", itemFields), 4)
	require.Empty(t, listing.Filter(fixtures(), "washer", itemFields))
}

func TestSortByField(t *testing.T) {
	tests := []struct {
		field string
		desc  bool
		want  []string
	}{
		{"name", false, []string{"anchor bolt", "Bearing", "Bracket", "Cable tray"}},
		{"name", true, []string{"Cable tray", "Bracket", "Bearing", "anchor bolt"}},
		{"qty", false, []string{"Bearing", "Bracket", "Cable tray", "anchor bolt"}},
		{"price", true, []string{"Cable tray", "Bearing", "Bracket", "anchor bolt"}},
		{"active", false, []string{"anchor bolt", "Bearing", "Bracket", "Cable tray"}},
		{"created", false, []string{"anchor bolt", "Cable tray", "Bracket", "Bearing"}},
		{"unknown", false, []string{"Bracket", "anchor bolt", "Cable tray", "Bearing"}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			items := fixtures()
			listing.Sort(items, tt.field, tt.desc, itemFields)
			require.Equal(t, tt.want, names(items))
		})
	}
}

func TestApplyPaginates(t *testing.T) {
	items := fixtures()

	page := listing.Apply(items, listing.Query{Page: 2, PageSize: 3, SortBy: "name"}, itemFields)
	require.Equal(t, []string{"Cable tray"}, names(page.Items))
	require.Equal(t, 4, page.Total)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 3, page.PageSize)

	require.Equal(t, []string{"Bracket", "anchor bolt", "Cable tray", "Bearing"}, names(items), "input untouched")
}

func TestApplyPastTheEnd(t *testing.T) {
	page := listing.Apply(fixtures(), listing.Query{Page: 9, PageSize: 2}, itemFields)
	require.NotNil(t, page.Items)
	require.Empty(t, page.Items)
	require.Equal(t, 4, page.Total)
	require.Equal(t, 2, page.TotalPages)
}

func TestApplySearchThenCount(t *testing.T) {
	page := listing.Apply(fixtures(), listing.Query{Search: "br", SortBy: "qty", Desc: true}, itemFields)
	require.Equal(t, []string{"Bracket"}, names(page.Items))
	require.Equal(t, 1, page.Total)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, listing.DefaultPageSize, page.PageSize)
}

func TestApplyEmpty(t *testing.T) {
	page := listing.Apply[item](nil, listing.Query{}, itemFields)
	require.NotNil(t, page.Items)
	require.Equal(t, 0, page.Total)
	require.Equal(t, 0, page.TotalPages)
	require.Equal(t, 1, page.Page)
}
