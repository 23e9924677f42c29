package models

import "time"

// Word represents a vocabulary entry with one or more translations
type Word struct {
	ID           int64    `json:"id"`
	Word         string   `json:"word"`
	Translations []string `json:"translations"`
	PartOfSpeech string   `json:"part_of_speech"`
	// Article is "none" when the word carries no article
	Article   string    `json:"article"`
	CreatedAt time.Time `json:"created_at"`
}

// HasArticle reports whether the word carries a usable article
func (w *Word) HasArticle() bool {
	return w.Article != "" && w.Article != "none"
}

// NormalizeArticle maps empty/missing article values to "none"
func NormalizeArticle(article string) string {
	if article == "" {
		return "none"
	}
	return article
}

// WordTracking holds per-word practice history used for queue weighting
type WordTracking struct {
	WordID        int64     `json:"word_id"`
	Word          string    `json:"word"`
	TotalAttempts int       `json:"total_attempts"`
	Mistakes      int       `json:"mistakes"`
	LastAccessed  time.Time `json:"last_accessed"`
	Score         float64   `json:"score"`
}
