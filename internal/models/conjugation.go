package models

import "time"

// Conjugation represents one conjugated form of a verb
type Conjugation struct {
	ID          int64     `json:"id"`
	Verb        string    `json:"verb"`
	Person      string    `json:"person"`
	Tense       string    `json:"tense"`
	Conjugation string    `json:"conjugation"`
	Irregular   bool      `json:"irregular"`
	Pronominal  bool      `json:"pronominal"`
	VerbGroup   int       `json:"verb_group"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConjugationTracking holds per-conjugation practice history used for queue weighting
type ConjugationTracking struct {
	ConjugationID int64     `json:"conjugation_id"`
	Verb          string    `json:"verb"`
	Person        string    `json:"person"`
	Tense         string    `json:"tense"`
	TotalAttempts int       `json:"total_attempts"`
	Mistakes      int       `json:"mistakes"`
	LastAccessed  time.Time `json:"last_accessed"`
	Score         float64   `json:"score"`
}
