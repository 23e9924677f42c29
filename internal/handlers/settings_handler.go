package handlers

import (
	"net/http"
	"vocadrill/internal/models"
	"vocadrill/internal/service"
)

// SettingsHandler handles the per-user settings document and the derived
// drill option sets
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the stored settings document, or defaults
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	settings, err := h.settingsService.GetSettings(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load settings", "get settings failed", err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// Put replaces the settings document
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var settings models.Settings
	if err := decodeJSON(r, &settings); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "put settings decode failed", err)
		return
	}

	if err := h.settingsService.SaveSettings(user.ID, &settings); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "save settings failed", err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// GameOptions returns the option sets the drill configuration may offer,
// derived from settings and the data actually present
func (h *SettingsHandler) GameOptions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	options, err := h.settingsService.GameOptions(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load game options", "game options failed", err)
		return
	}
	respondJSON(w, http.StatusOK, options)
}
