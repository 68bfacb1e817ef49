package domain

import (
	"slices"
	"strconv"
	"strings"
)

// QueryFilters narrows a sequence of devotional items.
// String fields hold normalized (trimmed, lowercased) values; empty means absent.
// Limit is zero when no truncation applies.
type QueryFilters struct {
	Deity    string
	Category string
	Search   string
	Limit    int
}

// NewQueryFilters normalizes raw filter values as received from a request.
// A limit that is not a positive base-10 integer is dropped.
func NewQueryFilters(deity, category, search, limit string) QueryFilters {
	return QueryFilters{
		Deity:    normalize(deity),
		Category: normalize(category),
		Search:   normalize(search),
		Limit:    ParseLimit(limit),
	}
}

// ParseLimit returns the limit encoded in s, or 0 when s is not a positive integer.
func ParseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0
	}

	return n
}

// IsEmpty reports whether no filter is set.
func (f QueryFilters) IsEmpty() bool {
	return f.Deity == "" && f.Category == "" && f.Search == "" && f.Limit <= 0
}

// Predicates returns the item predicates for every present filter.
func (f QueryFilters) Predicates() []Predicate {
	var preds []Predicate

	if f.Deity != "" {
		preds = append(preds, MatchDeity(f.Deity))
	}

	if f.Category != "" {
		preds = append(preds, MatchCategory(f.Category))
	}

	if f.Search != "" {
		preds = append(preds, MatchSearch(f.Search))
	}

	return preds
}

// Apply returns the items that satisfy every present filter, in their original
// order, truncated to Limit. With no filters the input is returned unchanged.
func (f QueryFilters) Apply(items []DevotionalItem) []DevotionalItem {
	if f.IsEmpty() {
		return items
	}

	out := Where(items, f.Predicates()...)

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}

	return slices.Clip(out)
}

// Predicate reports whether an item should be kept.
type Predicate func(DevotionalItem) bool

// Where returns the items matching all predicates, preserving order.
func Where(items []DevotionalItem, preds ...Predicate) []DevotionalItem {
	out := make([]DevotionalItem, 0, len(items))

	for _, item := range items {
		if matchesAll(item, preds) {
			out = append(out, item)
		}
	}

	return out
}

func matchesAll(item DevotionalItem, preds []Predicate) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}

	return true
}

// MatchDeity keeps items whose classified deity equals deity, ignoring case.
func MatchDeity(deity string) Predicate {
	want := normalize(deity)

	return func(item DevotionalItem) bool {
		return normalize(string(ClassifyItem(item))) == want
	}
}

// MatchCategory keeps items whose category, or "uncategorized", equals category, ignoring case.
func MatchCategory(category string) Predicate {
	want := normalize(category)

	return func(item DevotionalItem) bool {
		return normalize(item.CategoryOrDefault()) == want
	}
}

// MatchSearch keeps items whose title, author and content contain term, ignoring case.
func MatchSearch(term string) Predicate {
	want := normalize(term)

	return func(item DevotionalItem) bool {
		haystack := strings.ToLower(item.Title + " " + item.Author + " " + item.Content)
		return strings.Contains(haystack, want)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
