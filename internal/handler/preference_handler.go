package handler

import (
	"encoding/json"
	"net/http"

	"doc-editor-shell/internal/domain"
)

// PreferenceHandler handles the UI preference endpoints.
type PreferenceHandler struct {
	preferences domain.PreferenceService
	logger      domain.Logger
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferences domain.PreferenceService, logger domain.Logger) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences, logger: logger}
}

// GetPreferences returns the persisted UI settings, or defaults.
func (h *PreferenceHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	settings, err := h.preferences.GetSettings()
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdatePreferences validates and stores new UI settings.
func (h *PreferenceHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var settings domain.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.preferences.UpdateSettings(&settings)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
