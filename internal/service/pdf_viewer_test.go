package service

import (
	"testing"

	apperrors "doc-editor-shell/pkg/errors"
)

func TestViewerState_PageNavigation(t *testing.T) {
	state := NewViewerState(10)

	if state.Page != 1 || state.Zoom != ViewerZoomDefault {
		t.Fatalf("initial state = %+v, want page 1 zoom %d", state, ViewerZoomDefault)
	}

	state = state.NextPage()
	if state.Page != 2 {
		t.Errorf("NextPage() page = %d, want 2", state.Page)
	}

	state = state.GoToPage(10).NextPage()
	if state.Page != 10 {
		t.Errorf("NextPage at last page = %d, want saturation at 10", state.Page)
	}

	state = state.GoToPage(1).PrevPage()
	if state.Page != 1 {
		t.Errorf("PrevPage at first page = %d, want saturation at 1", state.Page)
	}

	// Out-of-range jumps clamp instead of failing.
	if got := state.GoToPage(999).Page; got != 10 {
		t.Errorf("GoToPage(999) = %d, want 10", got)
	}
	if got := state.GoToPage(-3).Page; got != 1 {
		t.Errorf("GoToPage(-3) = %d, want 1", got)
	}
}

func TestViewerState_ZoomBounds(t *testing.T) {
	state := NewViewerState(1)

	state = state.SetZoom(ViewerZoomMax).ZoomIn()
	if state.Zoom != ViewerZoomMax {
		t.Errorf("ZoomIn at max = %d, want %d", state.Zoom, ViewerZoomMax)
	}

	state = state.SetZoom(ViewerZoomMin).ZoomOut()
	if state.Zoom != ViewerZoomMin {
		t.Errorf("ZoomOut at min = %d, want %d", state.Zoom, ViewerZoomMin)
	}

	if got := state.SetZoom(10000).Zoom; got != ViewerZoomMax {
		t.Errorf("SetZoom(10000) = %d, want %d", got, ViewerZoomMax)
	}
	if got := state.SetZoom(0).Zoom; got != ViewerZoomMin {
		t.Errorf("SetZoom(0) = %d, want %d", got, ViewerZoomMin)
	}

	// Stepping from the default stays on the step grid.
	state = NewViewerState(1).ZoomIn()
	if state.Zoom != ViewerZoomDefault+ViewerZoomStep {
		t.Errorf("ZoomIn from default = %d, want %d", state.Zoom, ViewerZoomDefault+ViewerZoomStep)
	}
}

func TestViewerState_EmptyDocument(t *testing.T) {
	state := NewViewerState(0)
	if state.PageCount != 1 {
		t.Errorf("PageCount = %d, want floor of 1", state.PageCount)
	}
}

func TestPDFViewer_RejectsNonPDFPayload(t *testing.T) {
	viewer := NewPDFViewer(nil)

	// The magic check runs before the renderer is touched.
	_, err := viewer.OpenDocument([]byte("<html>not a pdf</html>"))
	if !apperrors.IsType(err, apperrors.ErrorTypeEmptyOrCorrupt) {
		t.Errorf("OpenDocument() error = %v, want empty_or_corrupt_file", err)
	}

	_, err = viewer.OpenDocument(nil)
	if !apperrors.IsType(err, apperrors.ErrorTypeEmptyOrCorrupt) {
		t.Errorf("OpenDocument(nil) error = %v, want empty_or_corrupt_file", err)
	}
}
