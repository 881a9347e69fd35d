package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doc-editor-shell/internal/domain"
)

func TestGetPreferences_Defaults(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/preferences", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var settings domain.UserSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatal(err)
	}
	if settings.ActiveTool != "select" {
		t.Errorf("ActiveTool = %q, want select", settings.ActiveTool)
	}
	if settings.DefaultZoom != domain.EditorZoomDefault {
		t.Errorf("DefaultZoom = %d, want %d", settings.DefaultZoom, domain.EditorZoomDefault)
	}
}

func TestUpdatePreferences_RoundTrip(t *testing.T) {
	router := newTestRouter(t)

	body := `{"active_tool":"highlight","default_zoom":150,"sidebar_collapsed":true}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/preferences", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var settings domain.UserSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatal(err)
	}
	if settings.ActiveTool != "highlight" || settings.DefaultZoom != 150 || !settings.SidebarCollapsed {
		t.Errorf("settings = %+v", settings)
	}
}

func TestUpdatePreferences_Invalid(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"Unknown tool", `{"active_tool":"teleport"}`},
		{"Zoom out of range", `{"default_zoom":400}`},
		{"Malformed JSON", `{"active_tool":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
