package domain

// Static display tables. These are lookup data, not a localization engine.

var deityDisplayNames = map[Deity]string{
	DeityHanuman:   "Hanuman Dev",
	DeityShiv:      "Shiv Bhagwan",
	DeityRam:       "Ram Bhagwan",
	DeityKrishna:   "Krishna Bhagwan",
	DeityDurga:     "Durga Mata",
	DeityLakshmi:   "Lakshmi Mata",
	DeityGanesh:    "Ganesh Dev",
	DeityShani:     "Shani Dev",
	DeitySaraswati: "Saraswati Mata",
	DeityVishnu:    "Vishnu Bhagwan",
	DeityBrahma:    "Brahma Bhagwan",
	DeityKali:      "Kali Mata",
	DeitySurya:     "Surya Dev",
	DeityChandra:   "Chandra Dev",
	DeityBhairav:   "Bhairav Dev",
	DeityOther:     "Other",
}

var deityHindiNames = map[Deity]string{
	DeityHanuman:   "हनुमान देव",
	DeityShiv:      "शिव भगवान",
	DeityRam:       "राम भगवान",
	DeityKrishna:   "कृष्ण भगवान",
	DeityDurga:     "दुर्गा माता",
	DeityLakshmi:   "लक्ष्मी माता",
	DeityGanesh:    "गणेश देव",
	DeityShani:     "शनि देव",
	DeitySaraswati: "सरस्वती माता",
	DeityVishnu:    "विष्णु भगवान",
	DeityBrahma:    "ब्रह्मा भगवान",
	DeityKali:      "काली माता",
	DeitySurya:     "सूर्य देव",
	DeityChandra:   "चंद्र देव",
	DeityBhairav:   "भैरव देव",
	DeityOther:     "अन्य",
}

var collectionHindiNames = map[CollectionName]string{
	CollectionAarti:   "आरती",
	CollectionChalisa: "चालीसा",
	CollectionStrotam: "स्तोत्र",
}

// DisplayName returns the English display name, e.g. "Durga Mata".
// Unknown tags return the tag itself.
func (d Deity) DisplayName() string {
	if name, ok := deityDisplayNames[d]; ok {
		return name
	}

	return string(d)
}

// HindiName returns the Devanagari display name, e.g. "दुर्गा माता".
// Unknown tags return the tag itself.
func (d Deity) HindiName() string {
	if name, ok := deityHindiNames[d]; ok {
		return name
	}

	return string(d)
}

// HindiName returns the Devanagari name of the collection type.
func (n CollectionName) HindiName() string {
	if name, ok := collectionHindiNames[n]; ok {
		return name
	}

	return n.Title()
}
