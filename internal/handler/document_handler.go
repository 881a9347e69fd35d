// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"
	"strconv"

	"doc-editor-shell/internal/domain"
	"doc-editor-shell/internal/service"

	"github.com/gorilla/mux"
)

// uploadFormMemory caps how much of a multipart upload stays in memory
// before spooling to disk.
const uploadFormMemory = 32 << 20

// DocumentHandler handles the document hand-off and viewer endpoints.
type DocumentHandler struct {
	handoff  domain.HandoffService
	transfer domain.TransferContext
	gateway  domain.StorageGateway
	pdf      *service.PDFViewer
	docx     *service.DocxConverter
	logger   domain.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(handoff domain.HandoffService, transfer domain.TransferContext, gateway domain.StorageGateway, pdf *service.PDFViewer, docx *service.DocxConverter, logger domain.Logger) *DocumentHandler {
	return &DocumentHandler{
		handoff:  handoff,
		transfer: transfer,
		gateway:  gateway,
		pdf:      pdf,
		docx:     docx,
		logger:   logger,
	}
}

// Upload accepts a multipart file and runs the hand-off pipeline. On
// success the response is the navigation contract the client needs to open
// the right viewer.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	result, err := h.handoff.Open(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// GetActive returns the metadata of the currently active document.
func (h *DocumentHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	doc, err := h.resolveActive()
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// GetActiveStatus reports whether the active document would survive a
// restart. Clients use this to warn before the user navigates away.
func (h *DocumentHandler) GetActiveStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"unsaved": h.handoff.UnsavedActive()})
}

// ClearActive drops the active document from both the transfer context and
// the persistent snapshot.
func (h *DocumentHandler) ClearActive(w http.ResponseWriter, r *http.Request) {
	h.transfer.Clear()
	h.gateway.Remove(domain.KeyEditorState)
	w.WriteHeader(http.StatusNoContent)
}

// RenderPage renders one page of the active PDF as PNG. Page comes from the
// path, zoom percent from the query string; both are clamped by the viewer.
func (h *DocumentHandler) RenderPage(w http.ResponseWriter, r *http.Request) {
	doc, err := h.resolveActive()
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if doc.Category != domain.CategoryPDF {
		writeError(w, http.StatusBadRequest, "active document is not a PDF")
		return
	}

	page, err := strconv.Atoi(mux.Vars(r)["page"])
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	zoom := service.ViewerZoomDefault
	if raw := r.URL.Query().Get("zoom"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			zoom = parsed
		}
	}

	pdfDoc, err := h.pdf.OpenDocument(doc.Payload)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	defer pdfDoc.Close()

	png, err := pdfDoc.RenderPage(page, zoom)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// GetActiveHTML converts the active DOCX document to HTML.
func (h *DocumentHandler) GetActiveHTML(w http.ResponseWriter, r *http.Request) {
	doc, err := h.resolveActive()
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if doc.MIMEType != domain.MIMEDocx {
		writeError(w, http.StatusBadRequest, "active document is not a DOCX file")
		return
	}

	html, warnings, err := h.docx.ConvertToHTML(doc.Payload)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if warnings == nil {
		warnings = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"document_id": doc.DocumentID,
		"html":        html,
		"warnings":    warnings,
	})
}

// resolveActive finds the active document ID, preferring the in-memory
// handle and falling back to the persisted snapshot after a restart, then
// resolves its content.
func (h *DocumentHandler) resolveActive() (*domain.ResolvedDocument, error) {
	if active := h.transfer.Active(); active != nil {
		return h.handoff.Resolve(active.DocumentID)
	}

	var snapshot domain.PersistedSnapshot
	if h.gateway.Get(domain.KeyEditorState, &snapshot) {
		return h.handoff.Resolve(snapshot.DocumentID)
	}

	return nil, domain.ErrNoActiveDocument
}
