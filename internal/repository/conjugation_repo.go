package repository

import (
	"database/sql"
	"fmt"
	"time"
	"vocadrill/internal/database"
	"vocadrill/internal/models"
)

// ConjugationRepository handles database operations for verb conjugations
type ConjugationRepository struct {
	db database.DBTX
}

// NewConjugationRepository creates a new conjugation repository
func NewConjugationRepository(db database.DBTX) *ConjugationRepository {
	return &ConjugationRepository{db: db}
}

// GetByForm retrieves a conjugation by its (verb, person, tense) key
func (r *ConjugationRepository) GetByForm(userID int64, verb, person, tense string) (*models.Conjugation, error) {
	query := `
		SELECT id, verb, person, tense, conjugation, irregular, pronominal, verb_group, created_at
		FROM conjugations
		WHERE user_id = ? AND verb = ? AND person = ? AND tense = ?
	`
	return r.scanConjugation(r.db.QueryRow(query, userID, verb, person, tense))
}

// GetByID retrieves a conjugation by ID
func (r *ConjugationRepository) GetByID(userID, id int64) (*models.Conjugation, error) {
	query := `
		SELECT id, verb, person, tense, conjugation, irregular, pronominal, verb_group, created_at
		FROM conjugations
		WHERE user_id = ? AND id = ?
	`
	return r.scanConjugation(r.db.QueryRow(query, userID, id))
}

func (r *ConjugationRepository) scanConjugation(row *sql.Row) (*models.Conjugation, error) {
	c := &models.Conjugation{}
	err := row.Scan(
		&c.ID, &c.Verb, &c.Person, &c.Tense, &c.Conjugation,
		&c.Irregular, &c.Pronominal, &c.VerbGroup, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conjugation: %w", err)
	}
	return c, nil
}

// CreateConjugation inserts a conjugation together with its tracking row
func (r *ConjugationRepository) CreateConjugation(userID int64, c *models.Conjugation) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO conjugations (user_id, verb, person, tense, conjugation, irregular, pronominal, verb_group)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := tx.ExecReturningID(query, userID, c.Verb, c.Person, c.Tense, c.Conjugation,
		c.Irregular, c.Pronominal, c.VerbGroup)
	if err != nil {
		return fmt.Errorf("failed to create conjugation: %w", err)
	}

	trackQuery := `
		INSERT INTO conjugation_tracking (user_id, conjugation_id, total_attempts, mistakes, last_accessed, score)
		VALUES (?, ?, 0, 0, ?, 5)
	`
	if _, err := tx.Exec(trackQuery, userID, id, time.Now()); err != nil {
		return fmt.Errorf("failed to create tracking row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	c.ID = id
	c.CreatedAt = time.Now()
	return nil
}

// UpdateConjugation replaces a conjugation's fields
func (r *ConjugationRepository) UpdateConjugation(userID int64, c *models.Conjugation) error {
	query := `
		UPDATE conjugations
		SET verb = ?, person = ?, tense = ?, conjugation = ?, irregular = ?, pronominal = ?, verb_group = ?
		WHERE user_id = ? AND id = ?
	`
	result, err := r.db.Exec(query, c.Verb, c.Person, c.Tense, c.Conjugation,
		c.Irregular, c.Pronominal, c.VerbGroup, userID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update conjugation: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("conjugation %d not found", c.ID)
	}
	return nil
}

// DeleteConjugation removes a conjugation and its tracking row
func (r *ConjugationRepository) DeleteConjugation(userID, id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM conjugation_tracking WHERE user_id = ? AND conjugation_id = ?", userID, id); err != nil {
		return fmt.Errorf("failed to delete tracking row: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM conjugations WHERE user_id = ? AND id = ?", userID, id); err != nil {
		return fmt.Errorf("failed to delete conjugation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ListConjugations retrieves all conjugations for a user
func (r *ConjugationRepository) ListConjugations(userID int64) ([]models.Conjugation, error) {
	query := `
		SELECT id, verb, person, tense, conjugation, irregular, pronominal, verb_group, created_at
		FROM conjugations
		WHERE user_id = ?
		ORDER BY verb, tense, person
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conjugations: %w", err)
	}
	defer rows.Close()

	var conjugations []models.Conjugation
	for rows.Next() {
		var c models.Conjugation
		if err := rows.Scan(
			&c.ID, &c.Verb, &c.Person, &c.Tense, &c.Conjugation,
			&c.Irregular, &c.Pronominal, &c.VerbGroup, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conjugation: %w", err)
		}
		conjugations = append(conjugations, c)
	}
	return conjugations, rows.Err()
}

// GetTrackedConjugations retrieves all conjugations joined with their
// tracking data, used by the queue builder for score weighting
func (r *ConjugationRepository) GetTrackedConjugations(userID int64) ([]models.Conjugation, []models.ConjugationTracking, error) {
	query := `
		SELECT c.id, c.verb, c.person, c.tense, c.conjugation, c.irregular, c.pronominal, c.verb_group, c.created_at,
		       t.total_attempts, t.mistakes, t.last_accessed, t.score
		FROM conjugations c
		JOIN conjugation_tracking t ON t.conjugation_id = c.id
		WHERE c.user_id = ?
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query tracked conjugations: %w", err)
	}
	defer rows.Close()

	var conjugations []models.Conjugation
	var tracking []models.ConjugationTracking
	for rows.Next() {
		var c models.Conjugation
		var track models.ConjugationTracking
		if err := rows.Scan(
			&c.ID, &c.Verb, &c.Person, &c.Tense, &c.Conjugation,
			&c.Irregular, &c.Pronominal, &c.VerbGroup, &c.CreatedAt,
			&track.TotalAttempts, &track.Mistakes, &track.LastAccessed, &track.Score,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan tracked conjugation: %w", err)
		}
		track.ConjugationID = c.ID
		track.Verb = c.Verb
		track.Person = c.Person
		track.Tense = c.Tense
		conjugations = append(conjugations, c)
		tracking = append(tracking, track)
	}
	return conjugations, tracking, rows.Err()
}

// DistinctTenses returns the tenses that actually exist in the user's data
func (r *ConjugationRepository) DistinctTenses(userID int64) ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT tense FROM conjugations WHERE user_id = ? ORDER BY tense", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenses: %w", err)
	}
	defer rows.Close()

	var tenses []string
	for rows.Next() {
		var tense string
		if err := rows.Scan(&tense); err != nil {
			return nil, fmt.Errorf("failed to scan tense: %w", err)
		}
		tenses = append(tenses, tense)
	}
	return tenses, rows.Err()
}

// DistinctGroups returns the verb groups that actually exist in the user's data
func (r *ConjugationRepository) DistinctGroups(userID int64) ([]int, error) {
	rows, err := r.db.Query("SELECT DISTINCT verb_group FROM conjugations WHERE user_id = ? ORDER BY verb_group", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query verb groups: %w", err)
	}
	defer rows.Close()

	var groups []int
	for rows.Next() {
		var group int
		if err := rows.Scan(&group); err != nil {
			return nil, fmt.Errorf("failed to scan verb group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}
