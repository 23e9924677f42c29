package game

// Direction values for the word drill
const (
	DirectionFrenchToEnglish = "frenchToEnglish"
	DirectionEnglishToFrench = "englishToFrench"
	DirectionBoth            = "both"
)

// Pronominal filter values for the conjugation drill
const (
	PronominalOnly    = "only"
	PronominalExclude = "exclude"
	PronominalBoth    = "both"
)

// Config holds the user-chosen parameters for one drill session.
// Direction applies to the word drill; Mode, Tenses, Groups and Pronominal
// apply to the conjugation drill. An empty Tenses or Groups slice means no
// constraint on that dimension.
type Config struct {
	TimeLimit  int      `json:"timeLimit"`
	Direction  string   `json:"gameType,omitempty"`
	Mode       string   `json:"mode,omitempty"`
	Tenses     []string `json:"tenses,omitempty"`
	Groups     []int    `json:"groups,omitempty"`
	Pronominal string   `json:"pronominalMode,omitempty"`
	Ungraded   bool     `json:"ungraded"`
	ZenMode    bool     `json:"zenMode"`
}
