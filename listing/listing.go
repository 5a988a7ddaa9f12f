// Package listing pages, sorts and filters lists fetched from the remote API.
package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Fields maps a field name to an accessor. Accessors return string, int, int64,
// float64, bool or time.Time; other types are ignored by sort and search.
type Fields[T any] map[string]func(T) any

// Page is one page of results. Total counts the items that matched the search.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Apply filters, sorts and paginates items. The input slice is left untouched.
func Apply[T any](items []T, q Query, fields Fields[T]) Page[T] {
	q = q.normalised()

	matched := Filter(items, q.Search, fields)
	Sort(matched, q.SortBy, q.Desc, fields)

	total := len(matched)
	totalPages := (total + q.PageSize - 1) / q.PageSize

	start := min((q.Page-1)*q.PageSize, total)
	end := min(start+q.PageSize, total)

	pageItems := make([]T, end-start)
	copy(pageItems, matched[start:end])

	return Page[T]{
		Items:      pageItems,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Filter returns a new slice with the items whose string fields contain term,
// ignoring case. An empty term keeps every item.
func Filter[T any](items []T, term string, fields Fields[T]) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if term == "" || matches(item, term, fields) {
			out = append(out, item)
		}
	}
	return out
}

func matches[T any](item T, term string, fields Fields[T]) bool {
	for _, get := range fields {
		if s, ok := get(item).(string); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// Sort orders items in place by field. Unknown fields leave the order unchanged.
func Sort[T any](items []T, field string, desc bool, fields Fields[T]) {
	get, ok := fields[field]
	if !ok {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		c := compare(get(a), get(b))
		if desc {
			return -c
		}
		return c
	})
}

func compare(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(strings.ToLower(av), strings.ToLower(bv))
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmp.Compare(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return 0
}
