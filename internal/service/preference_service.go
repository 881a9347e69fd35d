package service

import (
	"time"

	"doc-editor-shell/internal/domain"
	apperrors "doc-editor-shell/pkg/errors"
)

// PreferenceManager persists UI settings through the storage gateway.
// Reads always succeed: a missing or undecodable record yields defaults.
// Writes validate first, then persist best-effort; a degraded store keeps
// the settings for the session only.
type PreferenceManager struct {
	gateway domain.StorageGateway
	logger  domain.Logger
}

func NewPreferenceService(gateway domain.StorageGateway, logger domain.Logger) *PreferenceManager {
	return &PreferenceManager{gateway: gateway, logger: logger}
}

// GetSettings returns the persisted settings, or defaults when none exist.
func (p *PreferenceManager) GetSettings() (*domain.UserSettings, error) {
	settings := defaultSettings()
	if !p.gateway.Get(domain.KeyUserSettings, settings) {
		return defaultSettings(), nil
	}
	if settings.DefaultZoom == 0 {
		settings.DefaultZoom = domain.EditorZoomDefault
	}
	return settings, nil
}

// UpdateSettings validates and persists the given settings, returning the
// stored form. Validation failures are the only errors; a storage failure
// is logged and the settings still apply for the current session.
func (p *PreferenceManager) UpdateSettings(settings *domain.UserSettings) (*domain.UserSettings, error) {
	if settings == nil {
		return nil, apperrors.NewValidationError("settings are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, apperrors.NewValidationError("invalid settings", err.Error())
	}

	settings.UpdatedAt = time.Now()
	if !p.gateway.Put(domain.KeyUserSettings, settings) {
		p.logger.Warn("settings not persisted, keeping them for this session only")
	}
	return settings, nil
}

func defaultSettings() *domain.UserSettings {
	return &domain.UserSettings{
		ActiveTool:  "select",
		DefaultZoom: domain.EditorZoomDefault,
	}
}
