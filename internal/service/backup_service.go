package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"
	"vocadrill/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string                 `json:"version"`
	ExportedAt   time.Time              `json:"exported_at"`
	DatabaseType string                 `json:"database_type"`
	Users        []UserBackup           `json:"users"`
	Settings     []SettingBackup        `json:"settings"`
	Words        []WordBackup           `json:"words"`
	Conjugations []ConjugationBackup    `json:"conjugations"`
	WordRuns     []WordRunBackup        `json:"word_runs"`
	ConjRuns     []ConjugationRunBackup `json:"conjugation_runs"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SettingBackup represents one settings row for backup
type SettingBackup struct {
	UserID int64  `json:"user_id"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// TrackingBackup represents the practice tracking attached to an item
type TrackingBackup struct {
	TotalAttempts int       `json:"total_attempts"`
	Mistakes      int       `json:"mistakes"`
	LastAccessed  time.Time `json:"last_accessed"`
	Score         float64   `json:"score"`
}

// WordBackup represents a vocabulary entry with its tracking for backup
type WordBackup struct {
	ID           int64          `json:"id"`
	UserID       int64          `json:"user_id"`
	Word         string         `json:"word"`
	Translations string         `json:"translations"`
	PartOfSpeech string         `json:"part_of_speech"`
	Article      string         `json:"article"`
	CreatedAt    time.Time      `json:"created_at"`
	Tracking     TrackingBackup `json:"tracking"`
}

// ConjugationBackup represents a conjugation with its tracking for backup
type ConjugationBackup struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	Verb        string         `json:"verb"`
	Person      string         `json:"person"`
	Tense       string         `json:"tense"`
	Conjugation string         `json:"conjugation"`
	Irregular   bool           `json:"irregular"`
	Pronominal  bool           `json:"pronominal"`
	VerbGroup   int            `json:"verb_group"`
	CreatedAt   time.Time      `json:"created_at"`
	Tracking    TrackingBackup `json:"tracking"`
}

// WordRunBackup represents a finished word drill for backup
type WordRunBackup struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	FinishedAt    time.Time `json:"finished_at"`
	TimeLimit     int       `json:"time_limit"`
	GameType      string    `json:"game_type"`
	ZenMode       bool      `json:"zen_mode"`
	Ungraded      bool      `json:"ungraded"`
	TotalAttempts int       `json:"total_attempts"`
	CorrectCount  int       `json:"correct_count"`
}

// ConjugationRunBackup represents a finished conjugation drill for backup
type ConjugationRunBackup struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	FinishedAt     time.Time `json:"finished_at"`
	TimeLimit      int       `json:"time_limit"`
	Mode           string    `json:"mode"`
	Tenses         string    `json:"tenses"`
	VerbGroups     string    `json:"verb_groups"`
	PronominalMode string    `json:"pronominal_mode"`
	ZenMode        bool      `json:"zen_mode"`
	Ungraded       bool      `json:"ungraded"`
	TotalAttempts  int       `json:"total_attempts"`
	CorrectCount   int       `json:"correct_count"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportSettings(backup); err != nil {
		return fmt.Errorf("failed to export settings: %w", err)
	}
	if err := s.exportWords(backup); err != nil {
		return fmt.Errorf("failed to export words: %w", err)
	}
	if err := s.exportConjugations(backup); err != nil {
		return fmt.Errorf("failed to export conjugations: %w", err)
	}
	if err := s.exportWordRuns(backup); err != nil {
		return fmt.Errorf("failed to export word runs: %w", err)
	}
	if err := s.exportConjugationRuns(backup); err != nil {
		return fmt.Errorf("failed to export conjugation runs: %w", err)
	}

	log.Printf("Exported: %d users, %d settings, %d words, %d conjugations, %d word runs, %d conjugation runs",
		len(backup.Users), len(backup.Settings), len(backup.Words),
		len(backup.Conjugations), len(backup.WordRuns), len(backup.ConjRuns))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader (for file uploads)
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importSettings(backup.Settings); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}
	if err := s.importWords(backup.Words); err != nil {
		return fmt.Errorf("failed to import words: %w", err)
	}
	if err := s.importConjugations(backup.Conjugations); err != nil {
		return fmt.Errorf("failed to import conjugations: %w", err)
	}
	if err := s.importWordRuns(backup.WordRuns); err != nil {
		return fmt.Errorf("failed to import word runs: %w", err)
	}
	if err := s.importConjugationRuns(backup.ConjRuns); err != nil {
		return fmt.Errorf("failed to import conjugation runs: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, is_admin, created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportSettings(backup *BackupData) error {
	query := "SELECT user_id, setting_key, setting_value FROM settings ORDER BY user_id, setting_key"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var st SettingBackup
		if err := rows.Scan(&st.UserID, &st.Key, &st.Value); err != nil {
			return err
		}
		backup.Settings = append(backup.Settings, st)
	}
	return rows.Err()
}

func (s *BackupService) exportWords(backup *BackupData) error {
	query := `
		SELECT v.id, v.user_id, v.word, v.translations, v.part_of_speech, v.article, v.created_at,
		       t.total_attempts, t.mistakes, t.last_accessed, t.score
		FROM vocabulary v
		JOIN word_tracking t ON t.word_id = v.id
		ORDER BY v.id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var w WordBackup
		if err := rows.Scan(&w.ID, &w.UserID, &w.Word, &w.Translations, &w.PartOfSpeech, &w.Article, &w.CreatedAt,
			&w.Tracking.TotalAttempts, &w.Tracking.Mistakes, &w.Tracking.LastAccessed, &w.Tracking.Score); err != nil {
			return err
		}
		backup.Words = append(backup.Words, w)
	}
	return rows.Err()
}

func (s *BackupService) exportConjugations(backup *BackupData) error {
	query := `
		SELECT c.id, c.user_id, c.verb, c.person, c.tense, c.conjugation, c.irregular, c.pronominal, c.verb_group, c.created_at,
		       t.total_attempts, t.mistakes, t.last_accessed, t.score
		FROM conjugations c
		JOIN conjugation_tracking t ON t.conjugation_id = c.id
		ORDER BY c.id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ConjugationBackup
		if err := rows.Scan(&c.ID, &c.UserID, &c.Verb, &c.Person, &c.Tense, &c.Conjugation,
			&c.Irregular, &c.Pronominal, &c.VerbGroup, &c.CreatedAt,
			&c.Tracking.TotalAttempts, &c.Tracking.Mistakes, &c.Tracking.LastAccessed, &c.Tracking.Score); err != nil {
			return err
		}
		backup.Conjugations = append(backup.Conjugations, c)
	}
	return rows.Err()
}

func (s *BackupService) exportWordRuns(backup *BackupData) error {
	query := "SELECT id, user_id, finished_at, time_limit, game_type, zen_mode, ungraded, total_attempts, correct_count FROM game_runs ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r WordRunBackup
		if err := rows.Scan(&r.ID, &r.UserID, &r.FinishedAt, &r.TimeLimit, &r.GameType,
			&r.ZenMode, &r.Ungraded, &r.TotalAttempts, &r.CorrectCount); err != nil {
			return err
		}
		backup.WordRuns = append(backup.WordRuns, r)
	}
	return rows.Err()
}

func (s *BackupService) exportConjugationRuns(backup *BackupData) error {
	query := "SELECT id, user_id, finished_at, time_limit, mode, tenses, verb_groups, pronominal_mode, zen_mode, ungraded, total_attempts, correct_count FROM conjugation_game_runs ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r ConjugationRunBackup
		if err := rows.Scan(&r.ID, &r.UserID, &r.FinishedAt, &r.TimeLimit, &r.Mode,
			&r.Tenses, &r.VerbGroups, &r.PronominalMode,
			&r.ZenMode, &r.Ungraded, &r.TotalAttempts, &r.CorrectCount); err != nil {
			return err
		}
		backup.ConjRuns = append(backup.ConjRuns, r)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, name, is_admin, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, u.IsAdmin, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSettings(settings []SettingBackup) error {
	log.Printf("Importing %d settings...", len(settings))
	for _, st := range settings {
		query := "INSERT INTO settings (user_id, setting_key, setting_value) VALUES (?, ?, ?)"
		_, err := s.db.Exec(query, st.UserID, st.Key, st.Value)
		if err != nil {
			return fmt.Errorf("failed to import setting %q for user %d: %w", st.Key, st.UserID, err)
		}
	}
	return nil
}

func (s *BackupService) importWords(words []WordBackup) error {
	log.Printf("Importing %d words...", len(words))
	for _, w := range words {
		query := "INSERT INTO vocabulary (id, user_id, word, translations, part_of_speech, article, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, w.ID, w.UserID, w.Word, w.Translations, w.PartOfSpeech, w.Article, w.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import word %d: %w", w.ID, err)
		}

		trackQuery := "INSERT INTO word_tracking (user_id, word_id, total_attempts, mistakes, last_accessed, score) VALUES (?, ?, ?, ?, ?, ?)"
		_, err = s.db.Exec(trackQuery, w.UserID, w.ID,
			w.Tracking.TotalAttempts, w.Tracking.Mistakes, w.Tracking.LastAccessed, w.Tracking.Score)
		if err != nil {
			return fmt.Errorf("failed to import tracking for word %d: %w", w.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importConjugations(conjugations []ConjugationBackup) error {
	log.Printf("Importing %d conjugations...", len(conjugations))
	for _, c := range conjugations {
		query := "INSERT INTO conjugations (id, user_id, verb, person, tense, conjugation, irregular, pronominal, verb_group, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, c.ID, c.UserID, c.Verb, c.Person, c.Tense, c.Conjugation,
			c.Irregular, c.Pronominal, c.VerbGroup, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import conjugation %d: %w", c.ID, err)
		}

		trackQuery := "INSERT INTO conjugation_tracking (user_id, conjugation_id, total_attempts, mistakes, last_accessed, score) VALUES (?, ?, ?, ?, ?, ?)"
		_, err = s.db.Exec(trackQuery, c.UserID, c.ID,
			c.Tracking.TotalAttempts, c.Tracking.Mistakes, c.Tracking.LastAccessed, c.Tracking.Score)
		if err != nil {
			return fmt.Errorf("failed to import tracking for conjugation %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importWordRuns(runs []WordRunBackup) error {
	log.Printf("Importing %d word runs...", len(runs))
	for _, r := range runs {
		query := "INSERT INTO game_runs (id, user_id, finished_at, time_limit, game_type, zen_mode, ungraded, total_attempts, correct_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, r.ID, r.UserID, r.FinishedAt, r.TimeLimit, r.GameType,
			r.ZenMode, r.Ungraded, r.TotalAttempts, r.CorrectCount)
		if err != nil {
			return fmt.Errorf("failed to import word run %d: %w", r.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importConjugationRuns(runs []ConjugationRunBackup) error {
	log.Printf("Importing %d conjugation runs...", len(runs))
	for _, r := range runs {
		query := "INSERT INTO conjugation_game_runs (id, user_id, finished_at, time_limit, mode, tenses, verb_groups, pronominal_mode, zen_mode, ungraded, total_attempts, correct_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, r.ID, r.UserID, r.FinishedAt, r.TimeLimit, r.Mode,
			r.Tenses, r.VerbGroups, r.PronominalMode,
			r.ZenMode, r.Ungraded, r.TotalAttempts, r.CorrectCount)
		if err != nil {
			return fmt.Errorf("failed to import conjugation run %d: %w", r.ID, err)
		}
	}
	return nil
}
