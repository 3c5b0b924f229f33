package listview

import (
	"slices"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the single active sort column. An empty Column means no
// sort: the collection keeps insertion order.
type SortState struct {
	Column    string
	Direction Direction
}

// Schema tells the engine how to read an entity: which string fields
// the text filter searches and how a sort column orders two records.
type Schema[T any] struct {
	// SearchFields returns the values the filter matches against.
	SearchFields func(item T) []string
	// Compare orders a and b on the named column, returning a
	// negative, zero, or positive value. Direction is applied by Sort.
	Compare func(a, b T, column string) int
}

// Filter returns the records where any search field contains the query
// as a case-insensitive substring. An empty query returns the input
// unchanged. The input is never mutated.
func Filter[T any](items []T, query string, fields func(item T) []string) []T {
	if query == "" {
		return items
	}

	needle := strings.ToLower(query)
	var out []T
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Sort returns a stably sorted copy of the collection. With no active
// column the input is returned unchanged.
func Sort[T any](items []T, state SortState, compare func(a, b T, column string) int) []T {
	if state.Column == "" {
		return items
	}

	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		c := compare(a, b, state.Column)
		if state.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// Paginate slices one page out of the collection. Pages are 1-indexed;
// an out-of-range page yields an empty slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}
