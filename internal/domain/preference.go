package domain

import "time"

// Editor zoom bounds, in percent.
const (
	EditorZoomMin     = 50
	EditorZoomMax     = 200
	EditorZoomDefault = 100
)

// EditingTools enumerates the tools the editor shell exposes. Tool state is
// placeholder UI state; selecting one has no backing engine.
var EditingTools = []string{"select", "draw", "highlight", "erase", "text", "crop", "ocr"}

// UserSettings holds UI preferences persisted across sessions under
// KeyUserSettings: last-used tool, sidebar collapsed states, last category
// and preferred zoom.
type UserSettings struct {
	ActiveTool            string    `json:"active_tool,omitempty"`
	LastCategory          Category  `json:"last_category,omitempty"`
	SidebarCollapsed      bool      `json:"sidebar_collapsed"`
	RightSidebarCollapsed bool      `json:"right_sidebar_collapsed"`
	DefaultZoom           int       `json:"default_zoom,omitempty"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Validate checks tool name and zoom range.
func (s *UserSettings) Validate() error {
	if s.ActiveTool != "" && !IsEditingTool(s.ActiveTool) {
		return &ValidationError{Field: "active_tool", Message: "unknown editing tool"}
	}
	if s.DefaultZoom != 0 && (s.DefaultZoom < EditorZoomMin || s.DefaultZoom > EditorZoomMax) {
		return &ValidationError{Field: "default_zoom", Message: "zoom must be between 50 and 200"}
	}
	return nil
}

// IsEditingTool reports whether the name is a known editor tool.
func IsEditingTool(name string) bool {
	for _, t := range EditingTools {
		if t == name {
			return true
		}
	}
	return false
}
