package listing

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Query selects one page of a filtered, sorted list.
type Query struct {
	Page     int
	PageSize int
	SortBy   string
	Desc     bool
	Search   string
}

// ParseQuery reads page, pageSize, sort, order and search from URL values.
// Missing or invalid numbers fall back to the defaults.
func ParseQuery(values url.Values) Query {
	q := Query{
		Page:     positiveInt(values.Get("page"), 1),
		PageSize: positiveInt(values.Get("pageSize"), DefaultPageSize),
		SortBy:   strings.TrimSpace(values.Get("sort")),
		Desc:     strings.EqualFold(values.Get("order"), "desc"),
		Search:   strings.TrimSpace(values.Get("search")),
	}
	return q.normalised()
}

func (q Query) normalised() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

func positiveInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
