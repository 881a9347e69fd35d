package service

import (
	"bytes"
	"image/png"
	"sync"

	"doc-editor-shell/internal/domain"
	apperrors "doc-editor-shell/pkg/errors"

	"github.com/gen2brain/go-fitz"
)

// Viewer zoom bounds, in percent. Distinct from the editor bounds: page
// rendering tolerates a wider range than text editing does.
const (
	ViewerZoomMin     = 50
	ViewerZoomMax     = 300
	ViewerZoomStep    = 10
	ViewerZoomDefault = 100

	baseRenderDPI = 72.0
)

// ViewerState tracks the current page and zoom for an open document. All
// transitions clamp to valid bounds; out-of-range requests resolve to the
// nearest valid value instead of failing.
type ViewerState struct {
	Page      int `json:"page"`
	PageCount int `json:"page_count"`
	Zoom      int `json:"zoom"`
}

// NewViewerState returns the initial state: first page, default zoom.
func NewViewerState(pageCount int) ViewerState {
	if pageCount < 1 {
		pageCount = 1
	}
	return ViewerState{Page: 1, PageCount: pageCount, Zoom: ViewerZoomDefault}
}

// GoToPage clamps target into [1, PageCount] and returns the updated state.
func (s ViewerState) GoToPage(target int) ViewerState {
	s.Page = clamp(target, 1, s.PageCount)
	return s
}

// NextPage advances one page, saturating at the last page.
func (s ViewerState) NextPage() ViewerState { return s.GoToPage(s.Page + 1) }

// PrevPage goes back one page, saturating at the first page.
func (s ViewerState) PrevPage() ViewerState { return s.GoToPage(s.Page - 1) }

// SetZoom clamps target into the viewer zoom range.
func (s ViewerState) SetZoom(target int) ViewerState {
	s.Zoom = clamp(target, ViewerZoomMin, ViewerZoomMax)
	return s
}

// ZoomIn raises the zoom by one step, saturating at the maximum.
func (s ViewerState) ZoomIn() ViewerState { return s.SetZoom(s.Zoom + ViewerZoomStep) }

// ZoomOut lowers the zoom by one step, saturating at the minimum.
func (s ViewerState) ZoomOut() ViewerState { return s.SetZoom(s.Zoom - ViewerZoomStep) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PDFViewer opens PDF payloads for page-by-page rendering.
type PDFViewer struct {
	logger domain.Logger
}

func NewPDFViewer(logger domain.Logger) *PDFViewer {
	return &PDFViewer{logger: logger}
}

// OpenDocument parses payload and returns a renderable document. The caller
// owns the document and must Close it when the viewer is done with it.
func (v *PDFViewer) OpenDocument(payload []byte) (*PDFDocument, error) {
	if !domain.HasPDFMagic(payload) {
		return nil, apperrors.NewEmptyOrCorruptError("payload is not a PDF")
	}

	doc, err := fitz.NewFromMemory(payload)
	if err != nil {
		return nil, apperrors.NewRenderFailureError("failed to open PDF", err)
	}

	pageCount := doc.NumPage()
	if pageCount < 1 {
		doc.Close()
		return nil, apperrors.NewRenderFailureError("PDF has no pages", nil)
	}

	return &PDFDocument{
		doc:       doc,
		pageCount: pageCount,
		title:     doc.Metadata()["title"],
	}, nil
}

// PDFDocument is an open PDF with its rendering handle. Safe for concurrent
// use; the underlying renderer is serialized behind a mutex.
type PDFDocument struct {
	mu        sync.Mutex
	doc       *fitz.Document
	pageCount int
	title     string
	closed    bool
}

// PageCount returns the number of pages.
func (d *PDFDocument) PageCount() int { return d.pageCount }

// Title returns the document title from the PDF metadata, possibly empty.
func (d *PDFDocument) Title() string { return d.title }

// RenderPage renders one page as PNG at the given zoom percent. Page and
// zoom are clamped to valid ranges first.
func (d *PDFDocument) RenderPage(page, zoom int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, apperrors.NewRenderFailureError("document is closed", nil)
	}

	page = clamp(page, 1, d.pageCount)
	zoom = clamp(zoom, ViewerZoomMin, ViewerZoomMax)

	img, err := d.doc.ImageDPI(page-1, baseRenderDPI*float64(zoom)/100)
	if err != nil {
		return nil, apperrors.NewRenderFailureError("failed to render page", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, apperrors.NewRenderFailureError("failed to encode page image", err)
	}
	return buf.Bytes(), nil
}

// Close releases the renderer. The document resource must be released
// explicitly when the viewer switches documents; Close is idempotent.
func (d *PDFDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.doc.Close()
}
