package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
	"vocadrill/internal/database"
	"vocadrill/internal/models"
)

// WordRepository handles database operations for vocabulary entries
type WordRepository struct {
	db database.DBTX
}

// NewWordRepository creates a new word repository
func NewWordRepository(db database.DBTX) *WordRepository {
	return &WordRepository{db: db}
}

// encodeTranslations stores the translation list as a JSON array, which
// keeps the column portable across all three supported databases
func encodeTranslations(translations []string) (string, error) {
	if translations == nil {
		translations = []string{}
	}
	data, err := json.Marshal(translations)
	if err != nil {
		return "", fmt.Errorf("failed to encode translations: %w", err)
	}
	return string(data), nil
}

func decodeTranslations(data string) ([]string, error) {
	var translations []string
	if err := json.Unmarshal([]byte(data), &translations); err != nil {
		return nil, fmt.Errorf("failed to decode translations: %w", err)
	}
	return translations, nil
}

// CreateWord inserts a vocabulary entry together with its tracking row
func (r *WordRepository) CreateWord(userID int64, word *models.Word) error {
	encoded, err := encodeTranslations(word.Translations)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO vocabulary (user_id, word, translations, part_of_speech, article)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := tx.ExecReturningID(query, userID, word.Word, encoded, word.PartOfSpeech, word.Article)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}

	trackQuery := `
		INSERT INTO word_tracking (user_id, word_id, total_attempts, mistakes, last_accessed, score)
		VALUES (?, ?, 0, 0, ?, 5)
	`
	if _, err := tx.Exec(trackQuery, userID, id, time.Now()); err != nil {
		return fmt.Errorf("failed to create tracking row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	word.ID = id
	word.CreatedAt = time.Now()
	return nil
}

// GetWordByName retrieves a word by its text, case-insensitively
func (r *WordRepository) GetWordByName(userID int64, word string) (*models.Word, error) {
	query := `
		SELECT id, word, translations, part_of_speech, article, created_at
		FROM vocabulary
		WHERE user_id = ? AND LOWER(word) = LOWER(?)
	`
	return r.scanWord(r.db.QueryRow(query, userID, word))
}

// GetWordByID retrieves a word by ID
func (r *WordRepository) GetWordByID(userID, id int64) (*models.Word, error) {
	query := `
		SELECT id, word, translations, part_of_speech, article, created_at
		FROM vocabulary
		WHERE user_id = ? AND id = ?
	`
	return r.scanWord(r.db.QueryRow(query, userID, id))
}

func (r *WordRepository) scanWord(row *sql.Row) (*models.Word, error) {
	word := &models.Word{}
	var encoded string
	err := row.Scan(&word.ID, &word.Word, &encoded, &word.PartOfSpeech, &word.Article, &word.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}

	if word.Translations, err = decodeTranslations(encoded); err != nil {
		return nil, err
	}
	return word, nil
}

// UpdateWord replaces a word's fields
func (r *WordRepository) UpdateWord(userID int64, word *models.Word) error {
	encoded, err := encodeTranslations(word.Translations)
	if err != nil {
		return err
	}

	query := `
		UPDATE vocabulary
		SET word = ?, translations = ?, part_of_speech = ?, article = ?
		WHERE user_id = ? AND id = ?
	`
	result, err := r.db.Exec(query, word.Word, encoded, word.PartOfSpeech, word.Article, userID, word.ID)
	if err != nil {
		return fmt.Errorf("failed to update word: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("word %d not found", word.ID)
	}
	return nil
}

// DeleteWord removes a word and its tracking row
func (r *WordRepository) DeleteWord(userID, id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM word_tracking WHERE user_id = ? AND word_id = ?", userID, id); err != nil {
		return fmt.Errorf("failed to delete tracking row: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM vocabulary WHERE user_id = ? AND id = ?", userID, id); err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ListWords retrieves all vocabulary entries for a user
func (r *WordRepository) ListWords(userID int64) ([]models.Word, error) {
	query := `
		SELECT id, word, translations, part_of_speech, article, created_at
		FROM vocabulary
		WHERE user_id = ?
		ORDER BY word
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var word models.Word
		var encoded string
		if err := rows.Scan(&word.ID, &word.Word, &encoded, &word.PartOfSpeech, &word.Article, &word.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		if word.Translations, err = decodeTranslations(encoded); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// GetTrackedWords retrieves all words joined with their tracking data,
// used by the queue builder for score weighting
func (r *WordRepository) GetTrackedWords(userID int64) ([]models.Word, []models.WordTracking, error) {
	query := `
		SELECT v.id, v.word, v.translations, v.part_of_speech, v.article, v.created_at,
		       t.total_attempts, t.mistakes, t.last_accessed, t.score
		FROM vocabulary v
		JOIN word_tracking t ON t.word_id = v.id
		WHERE v.user_id = ?
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query tracked words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	var tracking []models.WordTracking
	for rows.Next() {
		var word models.Word
		var track models.WordTracking
		var encoded string
		if err := rows.Scan(
			&word.ID, &word.Word, &encoded, &word.PartOfSpeech, &word.Article, &word.CreatedAt,
			&track.TotalAttempts, &track.Mistakes, &track.LastAccessed, &track.Score,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan tracked word: %w", err)
		}
		if word.Translations, err = decodeTranslations(encoded); err != nil {
			return nil, nil, err
		}
		track.WordID = word.ID
		track.Word = word.Word
		words = append(words, word)
		tracking = append(tracking, track)
	}
	return words, tracking, rows.Err()
}
