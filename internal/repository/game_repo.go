package repository

import (
	"encoding/json"
	"fmt"
	"time"
	"vocadrill/internal/database"
	"vocadrill/internal/models"
)

// TrackingUpdate describes the outcome of one queue item in a finished run
type TrackingUpdate struct {
	ItemID  int64
	Correct bool
}

// GameRepository persists finished drill runs and the per-item tracking
// updates they imply
type GameRepository struct {
	db database.DBTX
}

// NewGameRepository creates a new game repository
func NewGameRepository(db database.DBTX) *GameRepository {
	return &GameRepository{db: db}
}

// runScore recomputes an item's selection score after a run. Items with
// mistakes and items untouched for a while float to the top of the next
// queue; the floor keeps every item selectable.
func runScore(mistakes int, lastAccessed, now time.Time) float64 {
	hours := now.Sub(lastAccessed).Hours()
	if hours < 0 {
		hours = 0
	}
	score := 3 + float64(mistakes)*2 + hours
	if score < 3 {
		return 3
	}
	return score
}

// RecordWordRun inserts a word run row and applies its tracking updates in
// one transaction
func (r *GameRepository) RecordWordRun(userID int64, run *models.GameRun, updates []TrackingUpdate) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO game_runs (user_id, finished_at, time_limit, game_type, zen_mode, ungraded, total_attempts, correct_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := tx.ExecReturningID(query, userID, run.FinishedAt, run.TimeLimit, run.GameType,
		run.ZenMode, run.Ungraded, run.TotalAttempts, run.CorrectCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	run.ID = id

	if err := applyTracking(tx, "word_tracking", "word_id", userID, updates); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// RecordConjugationRun inserts a conjugation run row and applies its
// tracking updates in one transaction
func (r *GameRepository) RecordConjugationRun(userID int64, run *models.ConjugationGameRun, updates []TrackingUpdate) error {
	tenses, err := json.Marshal(run.Tenses)
	if err != nil {
		return fmt.Errorf("failed to encode tenses: %w", err)
	}
	groups, err := json.Marshal(run.Groups)
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO conjugation_game_runs (user_id, finished_at, time_limit, mode, tenses, verb_groups, pronominal_mode, zen_mode, ungraded, total_attempts, correct_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := tx.ExecReturningID(query, userID, run.FinishedAt, run.TimeLimit, run.Mode,
		string(tenses), string(groups), run.PronominalMode,
		run.ZenMode, run.Ungraded, run.TotalAttempts, run.CorrectCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	run.ID = id

	if err := applyTracking(tx, "conjugation_tracking", "conjugation_id", userID, updates); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func applyTracking(tx *database.Tx, table, idColumn string, userID int64, updates []TrackingUpdate) error {
	now := time.Now()
	for _, update := range updates {
		var mistakes int
		var lastAccessed time.Time
		selectQuery := fmt.Sprintf(
			"SELECT mistakes, last_accessed FROM %s WHERE user_id = ? AND %s = ?", table, idColumn)
		if err := tx.QueryRow(selectQuery, userID, update.ItemID).Scan(&mistakes, &lastAccessed); err != nil {
			// Item was deleted mid-session: nothing to update
			continue
		}

		if !update.Correct {
			mistakes++
		}
		score := runScore(mistakes, lastAccessed, now)

		updateQuery := fmt.Sprintf(
			"UPDATE %s SET total_attempts = total_attempts + 1, mistakes = ?, last_accessed = ?, score = ? WHERE user_id = ? AND %s = ?",
			table, idColumn)
		if _, err := tx.Exec(updateQuery, mistakes, now, score, userID, update.ItemID); err != nil {
			return fmt.Errorf("failed to update tracking: %w", err)
		}
	}
	return nil
}

// ListWordRuns retrieves word runs finished at or after the given time
func (r *GameRepository) ListWordRuns(userID int64, since time.Time) ([]models.GameRun, error) {
	query := `
		SELECT id, finished_at, time_limit, game_type, zen_mode, ungraded, total_attempts, correct_count
		FROM game_runs
		WHERE user_id = ? AND finished_at >= ?
		ORDER BY finished_at
	`
	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.GameRun
	for rows.Next() {
		var run models.GameRun
		if err := rows.Scan(&run.ID, &run.FinishedAt, &run.TimeLimit, &run.GameType,
			&run.ZenMode, &run.Ungraded, &run.TotalAttempts, &run.CorrectCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListConjugationRuns retrieves conjugation runs finished at or after the given time
func (r *GameRepository) ListConjugationRuns(userID int64, since time.Time) ([]models.ConjugationGameRun, error) {
	query := `
		SELECT id, finished_at, time_limit, mode, tenses, verb_groups, pronominal_mode, zen_mode, ungraded, total_attempts, correct_count
		FROM conjugation_game_runs
		WHERE user_id = ? AND finished_at >= ?
		ORDER BY finished_at
	`
	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ConjugationGameRun
	for rows.Next() {
		var run models.ConjugationGameRun
		var tenses, groups string
		if err := rows.Scan(&run.ID, &run.FinishedAt, &run.TimeLimit, &run.Mode,
			&tenses, &groups, &run.PronominalMode,
			&run.ZenMode, &run.Ungraded, &run.TotalAttempts, &run.CorrectCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(tenses), &run.Tenses); err != nil {
			return nil, fmt.Errorf("failed to decode tenses: %w", err)
		}
		if err := json.Unmarshal([]byte(groups), &run.Groups); err != nil {
			return nil, fmt.Errorf("failed to decode groups: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CreationDates returns the created_at timestamps for a user's vocabulary
// and conjugations, used to build the content growth series
func (r *GameRepository) CreationDates(userID int64) (words []time.Time, conjugations []time.Time, err error) {
	collect := func(query string) ([]time.Time, error) {
		rows, err := r.db.Query(query, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to query creation dates: %w", err)
		}
		defer rows.Close()

		var dates []time.Time
		for rows.Next() {
			var d time.Time
			if err := rows.Scan(&d); err != nil {
				return nil, fmt.Errorf("failed to scan date: %w", err)
			}
			dates = append(dates, d)
		}
		return dates, rows.Err()
	}

	words, err = collect("SELECT created_at FROM vocabulary WHERE user_id = ? ORDER BY created_at")
	if err != nil {
		return nil, nil, err
	}
	conjugations, err = collect("SELECT created_at FROM conjugations WHERE user_id = ? ORDER BY created_at")
	if err != nil {
		return nil, nil, err
	}
	return words, conjugations, nil
}
