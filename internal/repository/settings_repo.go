package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"vocadrill/internal/database"
	"vocadrill/internal/models"
)

// preferencesKey is the settings row holding a user's preference document
const preferencesKey = "preferences"

type SettingsRepository struct {
	db database.DBTX
}

func NewSettingsRepository(db database.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a raw setting value by key
func (r *SettingsRepository) GetSetting(userID int64, key string) (string, error) {
	var value string
	query := `SELECT setting_value FROM settings WHERE user_id = ? AND setting_key = ?`
	err := r.db.QueryRow(query, userID, key).Scan(&value)
	return value, err
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(userID int64, key, value string) error {
	query := r.db.GetDialect().UpsertSettingQuery()
	_, err := r.db.Exec(query, userID, key, value)
	return err
}

// GetPreferences retrieves a user's preference document, falling back to
// the defaults when none has been stored yet
func (r *SettingsRepository) GetPreferences(userID int64) (*models.Settings, error) {
	value, err := r.GetSetting(userID, preferencesKey)
	if err == sql.ErrNoRows {
		defaults := models.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	settings := &models.Settings{}
	if err := json.Unmarshal([]byte(value), settings); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return settings, nil
}

// SavePreferences replaces a user's preference document
func (r *SettingsRepository) SavePreferences(userID int64, settings *models.Settings) error {
	value, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := r.SetSetting(userID, preferencesKey, string(value)); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
