package service

import (
	"bytes"
	"fmt"
	"testing"

	"doc-editor-shell/internal/domain"
	apperrors "doc-editor-shell/pkg/errors"
	"doc-editor-shell/pkg/logger"
)

func newPreferenceFixture(store *fakeStore) *PreferenceManager {
	log := logger.NewLoggerTo(&bytes.Buffer{}, "error")
	return NewPreferenceService(NewStorageGateway(store, 0, log), log)
}

func TestPreferences_DefaultsWhenEmpty(t *testing.T) {
	service := newPreferenceFixture(newFakeStore())

	settings, err := service.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.ActiveTool != "select" {
		t.Errorf("ActiveTool = %q, want select", settings.ActiveTool)
	}
	if settings.DefaultZoom != domain.EditorZoomDefault {
		t.Errorf("DefaultZoom = %d, want %d", settings.DefaultZoom, domain.EditorZoomDefault)
	}
}

func TestPreferences_UpdateAndReadBack(t *testing.T) {
	service := newPreferenceFixture(newFakeStore())

	updated, err := service.UpdateSettings(&domain.UserSettings{
		ActiveTool:       "highlight",
		LastCategory:     domain.CategoryPDF,
		SidebarCollapsed: true,
		DefaultZoom:      150,
	})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be stamped")
	}

	got, err := service.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got.ActiveTool != "highlight" || got.DefaultZoom != 150 || !got.SidebarCollapsed {
		t.Errorf("read back mismatch: %+v", got)
	}
	if got.LastCategory != domain.CategoryPDF {
		t.Errorf("LastCategory = %q, want pdf", got.LastCategory)
	}
}

func TestPreferences_RejectsInvalidSettings(t *testing.T) {
	service := newPreferenceFixture(newFakeStore())

	tests := []struct {
		name     string
		settings *domain.UserSettings
	}{
		{"Nil settings", nil},
		{"Unknown tool", &domain.UserSettings{ActiveTool: "teleport"}},
		{"Zoom below editor range", &domain.UserSettings{DefaultZoom: 25}},
		{"Zoom above editor range", &domain.UserSettings{DefaultZoom: 400}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdateSettings(tt.settings)
			if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
				t.Errorf("UpdateSettings() error = %v, want validation", err)
			}
		})
	}
}

// TestPreferences_StorageFailureIsNotAnError covers the degradation rule:
// settings that cannot be persisted still apply for the session.
func TestPreferences_StorageFailureIsNotAnError(t *testing.T) {
	store := newFakeStore()
	store.failSetErr = fmt.Errorf("disk detached")
	service := newPreferenceFixture(store)

	updated, err := service.UpdateSettings(&domain.UserSettings{ActiveTool: "draw"})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v, want degraded success", err)
	}
	if updated.ActiveTool != "draw" {
		t.Errorf("ActiveTool = %q, want draw", updated.ActiveTool)
	}
}
