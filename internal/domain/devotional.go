// Package domain contains core business entities and rules.
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ItemID identifies a devotional item within its source collection.
// Source data uses either strings or integers, and the original kind is preserved
// so that responses echo the identifier exactly as it was authored.
type ItemID struct {
	str     string
	num     int64
	numeric bool
}

// StringID creates a string identifier.
func StringID(s string) ItemID {
	return ItemID{str: s}
}

// IntID creates an integer identifier.
func IntID(n int64) ItemID {
	return ItemID{num: n, numeric: true}
}

// ParseItemID converts a decoded identifier value into an ItemID.
// Accepts strings, integers, integral floats and json.Number.
func ParseItemID(v any) (ItemID, error) {
	switch id := v.(type) {
	case string:
		return StringID(id), nil
	case int:
		return IntID(int64(id)), nil
	case int64:
		return IntID(id), nil
	case uint64:
		if id > math.MaxInt64 {
			return ItemID{}, NewValidationErrorWithValue("id", "integer id out of range", v)
		}
		return IntID(int64(id)), nil
	case float64:
		if id != math.Trunc(id) || math.IsInf(id, 0) {
			return ItemID{}, NewValidationErrorWithValue("id", "numeric id must be an integer", v)
		}
		return IntID(int64(id)), nil
	case json.Number:
		n, err := id.Int64()
		if err != nil {
			return ItemID{}, NewValidationErrorWithValue("id", "numeric id must be an integer", v)
		}
		return IntID(n), nil
	case nil:
		return ItemID{}, NewValidationError("id", "id is required")
	default:
		return ItemID{}, NewValidationErrorWithValue("id", fmt.Sprintf("unsupported id type %T", v), v)
	}
}

// IsNumeric reports whether the identifier was authored as an integer.
func (id ItemID) IsNumeric() bool {
	return id.numeric
}

// IsZero reports whether the identifier is unset.
func (id ItemID) IsZero() bool {
	return !id.numeric && id.str == ""
}

// String returns the identifier in its textual form.
func (id ItemID) String() string {
	if id.numeric {
		return strconv.FormatInt(id.num, 10)
	}

	return id.str
}

// Value returns the identifier as int64 or string, suitable for serialization.
func (id ItemID) Value() any {
	if id.numeric {
		return id.num
	}

	return id.str
}

// DevotionalItem is a single textual work: an aarti, chalisa or strotam.
// Items are immutable once loaded. Absent fields hold the empty string.
type DevotionalItem struct {
	// ID is unique within the item's source collection.
	ID ItemID

	// Title is the display title, often in Devanagari.
	Title string

	// Author is an optional attribution.
	Author string

	// Content is the body text.
	Content string

	// Source is an optional provenance note.
	Source string

	// Category is an optional free-form grouping.
	Category string

	// Audio is an optional reference to an audio asset.
	Audio string
}

// CategoryOrDefault returns the item category, or UncategorizedCategory when absent.
func (i DevotionalItem) CategoryOrDefault() string {
	if i.Category == "" {
		return UncategorizedCategory
	}

	return i.Category
}

// UncategorizedCategory is the category assigned to items without one.
const UncategorizedCategory = "uncategorized"

// CollectionName names one of the three devotional collections.
type CollectionName string

// Collection names.
const (
	CollectionAarti   CollectionName = "aarti"
	CollectionChalisa CollectionName = "chalisa"
	CollectionStrotam CollectionName = "strotam"
)

// CollectionNames returns every collection name in merge order.
func CollectionNames() []CollectionName {
	return []CollectionName{CollectionAarti, CollectionChalisa, CollectionStrotam}
}

// ParseCollectionName resolves a collection name. Matching is exact.
func ParseCollectionName(s string) (CollectionName, error) {
	for _, name := range CollectionNames() {
		if string(name) == s {
			return name, nil
		}
	}

	return "", NewNotFoundError("collection", s)
}

// Title returns the capitalized display name of the collection.
func (n CollectionName) Title() string {
	if n == "" {
		return ""
	}

	return strings.ToUpper(string(n[:1])) + string(n[1:])
}

// Collections holds the three named collections.
type Collections struct {
	Aarti   []DevotionalItem
	Chalisa []DevotionalItem
	Strotam []DevotionalItem
}

// Get returns the items of the named collection, or nil for an unknown name.
func (c Collections) Get(name CollectionName) []DevotionalItem {
	switch name {
	case CollectionAarti:
		return c.Aarti
	case CollectionChalisa:
		return c.Chalisa
	case CollectionStrotam:
		return c.Strotam
	default:
		return nil
	}
}

// All returns the union of all collections: aarti, then chalisa, then strotam.
func (c Collections) All() []DevotionalItem {
	all := make([]DevotionalItem, 0, c.Len())
	all = append(all, c.Aarti...)
	all = append(all, c.Chalisa...)
	all = append(all, c.Strotam...)

	return all
}

// Len returns the total number of items across collections.
func (c Collections) Len() int {
	return len(c.Aarti) + len(c.Chalisa) + len(c.Strotam)
}
