// Package display holds the list shaping used by the screens: text search,
// day sections for timelines and the multi-select used for batch deletes.
package display

import "strings"

// Filter returns the items whose name contains query, ignoring case, in their
// original order. An empty query matches nothing.
func Filter[T any](items []T, query string, name func(T) string) []T {
	out := make([]T, 0)
	if query == "" {
		return out
	}
	needle := strings.ToLower(query)
	for _, item := range items {
		if strings.Contains(strings.ToLower(name(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}
