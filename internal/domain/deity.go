package domain

import "strings"

// Deity is a canonical deity tag derived from an item's title or author.
type Deity string

// Deity vocabulary.
const (
	DeityHanuman   Deity = "Hanuman"
	DeityShiv      Deity = "Shiv"
	DeityRam       Deity = "Ram"
	DeityKrishna   Deity = "Krishna"
	DeityDurga     Deity = "Durga"
	DeityLakshmi   Deity = "Lakshmi"
	DeityGanesh    Deity = "Ganesh"
	DeityShani     Deity = "Shani"
	DeitySaraswati Deity = "Saraswati"
	DeityVishnu    Deity = "Vishnu"
	DeityBrahma    Deity = "Brahma"
	DeityKali      Deity = "Kali"
	DeitySurya     Deity = "Surya"
	DeityChandra   Deity = "Chandra"
	DeityBhairav   Deity = "Bhairav"
	DeityOther     Deity = "Other"
)

// Vocabulary returns the closed set of deity tags in display order.
func Vocabulary() []Deity {
	return []Deity{
		DeityHanuman,
		DeityShiv,
		DeityRam,
		DeityKrishna,
		DeityDurga,
		DeityLakshmi,
		DeityGanesh,
		DeityShani,
		DeitySaraswati,
		DeityVishnu,
		DeityBrahma,
		DeityKali,
		DeitySurya,
		DeityChandra,
		DeityBhairav,
		DeityOther,
	}
}

// deityKeyword maps a lowercase keyword to a tag.
type deityKeyword struct {
	keyword string
	deity   Deity
}

// deityKeywords is scanned in order and the first substring hit wins.
// The order is part of the contract: "Ramchandra" resolves to Ram, never Chandra,
// and a title naming both Ram and Shiv resolves to Shiv wherever each appears.
var deityKeywords = []deityKeyword{
	{"हनुमान", DeityHanuman},
	{"hanuman", DeityHanuman},
	{"शिव", DeityShiv},
	{"shiva", DeityShiv},
	{"shiv", DeityShiv},
	{"रुद्र", DeityShiv},
	{"rudra", DeityShiv},
	{"शनि", DeityShani},
	{"shani", DeityShani},
	{"राम", DeityRam},
	{"ram", DeityRam},
	{"कृष्ण", DeityKrishna},
	{"krishna", DeityKrishna},
	{"दुर्गा", DeityDurga},
	{"durga", DeityDurga},
	{"लक्ष्मी", DeityLakshmi},
	{"lakshmi", DeityLakshmi},
	{"गणेश", DeityGanesh},
	{"ganesh", DeityGanesh},
	{"गणपति", DeityGanesh},
	{"ganpati", DeityGanesh},
	{"सरस्वती", DeitySaraswati},
	{"saraswati", DeitySaraswati},
	{"विष्णु", DeityVishnu},
	{"vishnu", DeityVishnu},
	{"ब्रह्मा", DeityBrahma},
	{"brahma", DeityBrahma},
	{"काली", DeityKali},
	{"kali", DeityKali},
	{"सूर्य", DeitySurya},
	{"surya", DeitySurya},
	{"चंद्र", DeityChandra},
	{"chandra", DeityChandra},
	{"भैरव", DeityBhairav},
	{"bhairav", DeityBhairav},
}

// Classify returns the deity tag for the given title and author.
// The title is scanned first; the author is consulted only when the title has no match.
func Classify(title, author string) Deity {
	if d, ok := matchDeity(title); ok {
		return d
	}

	if d, ok := matchDeity(author); ok {
		return d
	}

	return DeityOther
}

// ClassifyItem returns the deity tag of an item.
func ClassifyItem(item DevotionalItem) Deity {
	return Classify(item.Title, item.Author)
}

func matchDeity(text string) (Deity, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	lower := strings.ToLower(text)
	for _, kw := range deityKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.deity, true
		}
	}

	return "", false
}

// IsKnown reports whether d belongs to the vocabulary.
func (d Deity) IsKnown() bool {
	for _, v := range Vocabulary() {
		if v == d {
			return true
		}
	}

	return false
}

// DeityCount pairs a deity tag with the number of items classified to it.
type DeityCount struct {
	Deity Deity
	Count int
}

// CountByDeity classifies every item and returns one entry per vocabulary tag,
// in display order. Tags with no items are included with a zero count.
func CountByDeity(items []DevotionalItem) []DeityCount {
	counts := make(map[Deity]int, len(deityDisplayNames))
	for _, item := range items {
		counts[ClassifyItem(item)]++
	}

	vocab := Vocabulary()
	out := make([]DeityCount, 0, len(vocab))

	for _, d := range vocab {
		out = append(out, DeityCount{Deity: d, Count: counts[d]})
	}

	return out
}
