// Package listview derives a view over a fetched collection. The derivation
// is pure: the source slice is never mutated, and with no search, filters, or
// sort the view equals the source.
package listview

import (
	"sort"
	"strings"
)

// Options describes the view to derive. Zero value means identity.
type Options[T any] struct {
	// Search is matched case-insensitively against every SearchIn projection;
	// an item survives if any projection contains the term.
	Search   string
	SearchIn []func(T) string

	// Filters are ANDed. An item survives only if every filter accepts it.
	Filters []func(T) bool

	// Less, when set, orders the view. The sort is stable so equal items keep
	// their fetch order.
	Less func(a, b T) bool
}

// Apply derives the view. The result is a fresh slice; without a Less it is
// a subsequence of items, preserving relative order.
func Apply[T any](items []T, opts Options[T]) []T {
	out := make([]T, 0, len(items))
	term := strings.ToLower(strings.TrimSpace(opts.Search))
	for _, it := range items {
		if term != "" && !matches(it, term, opts.SearchIn) {
			continue
		}
		if !accepted(it, opts.Filters) {
			continue
		}
		out = append(out, it)
	}
	if opts.Less != nil {
		sort.SliceStable(out, func(i, j int) bool { return opts.Less(out[i], out[j]) })
	}
	return out
}

func matches[T any](it T, term string, projections []func(T) string) bool {
	for _, proj := range projections {
		if strings.Contains(strings.ToLower(proj(it)), term) {
			return true
		}
	}
	return false
}

func accepted[T any](it T, filters []func(T) bool) bool {
	for _, f := range filters {
		if !f(it) {
			return false
		}
	}
	return true
}
