package models

// Settings is the per-user configuration document that shapes which
// vocabulary fields and drill filters the UI offers
type Settings struct {
	SourceLang string        `json:"sourceLang"`
	TargetLang string        `json:"targetLang"`
	Vocab      VocabSettings `json:"vocab"`
	Conj       ConjSettings  `json:"conj"`
}

// VocabSettings enumerates the option sets for vocabulary entry forms
type VocabSettings struct {
	PartsOfSpeech []string `json:"partsOfSpeech"`
	Articles      []string `json:"articles"`
	Classes       []string `json:"classes"`
}

// ConjSettings enumerates the option sets for conjugation entry and drill filters
type ConjSettings struct {
	Persons         []string `json:"persons"`
	Tenses          []string `json:"tenses"`
	Groups          []int    `json:"groups"`
	AllowPronominal bool     `json:"allowPronominal"`
	AllowIrregular  bool     `json:"allowIrregular"`
}

// DefaultSettings returns the stock French trainer configuration used
// until the user saves their own
func DefaultSettings() Settings {
	return Settings{
		SourceLang: "English",
		TargetLang: "French",
		Vocab: VocabSettings{
			PartsOfSpeech: []string{"noun", "verb", "adjective", "adverb", "expression"},
			Articles:      []string{"le", "la", "les", "l'"},
			Classes:       []string{},
		},
		Conj: ConjSettings{
			Persons: []string{"je", "tu", "il/elle", "nous", "vous", "ils/elles"},
			Tenses: []string{
				"présent",
				"passé composé",
				"imparfait",
				"futur simple",
				"conditionnel présent",
				"impératif",
			},
			Groups:          []int{1, 2, 3},
			AllowPronominal: true,
			AllowIrregular:  true,
		},
	}
}
