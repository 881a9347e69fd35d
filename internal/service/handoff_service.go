package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"doc-editor-shell/internal/domain"
	apperrors "doc-editor-shell/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// readChunkSize is the buffer size for the hand-off read loop.
const readChunkSize = 64 * 1024

// HandoffCoordinator runs the pipeline from "file selected" to "file open":
// allow-list check, read, classification, validation, transfer-context
// install and best-effort persistence. Persistence failures degrade the
// result but never fail the hand-off.
type HandoffCoordinator struct {
	gateway     domain.StorageGateway
	transfer    domain.TransferContext
	logger      domain.Logger
	maxFileSize int64
}

// NewHandoffService creates the coordinator. maxFileSize caps the read; zero
// means unlimited.
func NewHandoffService(gateway domain.StorageGateway, transfer domain.TransferContext, maxFileSize int64, logger domain.Logger) *HandoffCoordinator {
	return &HandoffCoordinator{
		gateway:     gateway,
		transfer:    transfer,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

// Open performs a document hand-off and returns the navigation contract for
// the viewer.
//
// Unsupported files are rejected before a single byte is read. After that
// the pipeline is: read fully, reject empty payloads, resolve category,
// verify magic bytes for PDFs, install into the transfer context and persist
// a snapshot. The returned result always reflects the storage outcome
// honestly so the client can warn about unrecoverable documents.
func (h *HandoffCoordinator) Open(ctx context.Context, filename, declaredMIME string, file io.Reader) (*domain.HandoffResult, error) {
	if !domain.IsSupported(filename, declaredMIME) {
		return nil, apperrors.NewUnsupportedFileError(
			"file type is not supported",
			fmt.Sprintf("filename=%s declared_mime=%s", filename, declaredMIME),
		)
	}

	selectionID := h.transfer.BeginSelection()

	payload, err := h.readAll(ctx, file)
	if err != nil {
		return nil, apperrors.NewReadFailureError("failed to read file", err)
	}
	if len(payload) == 0 {
		return nil, apperrors.NewEmptyOrCorruptError("file is empty or corrupted")
	}

	category, mime := domain.Classify(filename, declaredMIME)
	if category == domain.CategoryUnknown {
		// Last resort: sniff the content. Extensions like .xps are
		// allow-listed without a static MIME mapping and land here.
		if detected := mimetype.Detect(payload); detected != nil {
			if sniffedCat, sniffedMIME := domain.Classify(filename, detected.String()); sniffedCat != domain.CategoryUnknown {
				category, mime = sniffedCat, sniffedMIME
			}
		}
	}

	if mime == domain.MIMEPDF && !domain.HasPDFMagic(payload) {
		return nil, apperrors.NewEmptyOrCorruptError("file does not look like a valid PDF")
	}

	handle := &domain.FileHandle{
		DocumentID: uuid.New().String(),
		Filename:   filename,
		Category:   category,
		MIMEType:   mime,
		Payload:    payload,
		SelectedAt: time.Now(),
	}
	if !domain.IsTextMIME(mime) {
		handle.DataURI = encodeDataURI(mime, payload)
	}

	if !h.transfer.CommitSelection(selectionID, handle) {
		// A newer selection started while this one was reading.
		return nil, domain.ErrStaleSelection
	}

	outcome := h.persistSnapshot(handle)

	h.logger.Info("document handed off",
		"document_id", handle.DocumentID,
		"category", string(category),
		"storage", string(outcome),
		"size_estimate_bytes", handle.SizeEstimateBytes)

	return &domain.HandoffResult{
		DocumentID:        handle.DocumentID,
		Category:          category,
		Filename:          filename,
		MIMEType:          mime,
		Storage:           outcome,
		SizeEstimateBytes: handle.SizeEstimateBytes,
		Oversized:         h.transfer.IsOversizedForStorage(),
	}, nil
}

// Resolve returns the payload and metadata for documentID. The persisted
// snapshot is preferred; when it was stored without a payload the in-memory
// transfer context covers the gap. Neither source resolving means the
// document is gone and the caller must request a fresh upload.
func (h *HandoffCoordinator) Resolve(documentID string) (*domain.ResolvedDocument, error) {
	if documentID == "" {
		return nil, apperrors.NewValidationError("document ID is required")
	}

	var snapshot domain.PersistedSnapshot
	if h.gateway.Get(domain.KeyEditorState, &snapshot) && snapshot.DocumentID == documentID {
		if !snapshot.StorageSkipped && snapshot.PayloadEncoded != "" {
			// The snapshot does not carry a MIME type; re-derive it from the
			// filename for the viewer's benefit.
			_, mime := domain.Classify(snapshot.Filename, "")
			return &domain.ResolvedDocument{
				DocumentID: snapshot.DocumentID,
				Category:   snapshot.Category,
				Filename:   snapshot.Filename,
				MIMEType:   mime,
				Source:     "storage",
				Payload:    decodeStoredPayload(snapshot.PayloadEncoded),
			}, nil
		}
	}

	if active := h.transfer.Active(); active != nil && active.DocumentID == documentID {
		return &domain.ResolvedDocument{
			DocumentID: active.DocumentID,
			Category:   active.Category,
			Filename:   active.Filename,
			MIMEType:   active.MIMEType,
			Source:     "memory",
			Payload:    active.Payload,
		}, nil
	}

	return nil, domain.ErrDocumentUnavailable
}

// UnsavedActive reports whether the active document would be lost on a
// restart: either its payload is oversized for storage or the persisted
// snapshot is missing, stale or payload-free.
func (h *HandoffCoordinator) UnsavedActive() bool {
	active := h.transfer.Active()
	if active == nil {
		return false
	}
	if h.transfer.IsOversizedForStorage() {
		return true
	}

	var snapshot domain.PersistedSnapshot
	if !h.gateway.Get(domain.KeyEditorState, &snapshot) {
		return true
	}
	return snapshot.DocumentID != active.DocumentID || snapshot.StorageSkipped
}

func (h *HandoffCoordinator) persistSnapshot(handle *domain.FileHandle) domain.StorageOutcome {
	if !h.gateway.Available() {
		h.logger.Warn("persistent store unavailable, document held in memory only",
			"document_id", handle.DocumentID)
		return domain.StorageUnavailable
	}

	snapshot := domain.PersistedSnapshot{
		DocumentID:     handle.DocumentID,
		Category:       handle.Category,
		Filename:       handle.Filename,
		PayloadEncoded: storablePayload(handle),
		LastEdited:     time.Now(),
	}

	if h.gateway.Put(domain.KeyEditorState, &snapshot) {
		return domain.StorageFull
	}
	return domain.StoragePartial
}

// readAll drains file in chunks, honoring context cancellation and the
// configured size cap.
func (h *HandoffCoordinator) readAll(ctx context.Context, file io.Reader) ([]byte, error) {
	var payload []byte
	buf := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := file.Read(buf)
		if n > 0 {
			payload = append(payload, buf[:n]...)
			if h.maxFileSize > 0 && int64(len(payload)) > h.maxFileSize {
				return nil, fmt.Errorf("file exceeds maximum size of %d bytes", h.maxFileSize)
			}
		}
		if err == io.EOF {
			return payload, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// storablePayload returns the string form of the payload for persistence:
// raw text for text-like content, a data URI for everything else.
func storablePayload(handle *domain.FileHandle) string {
	if handle.DataURI != "" {
		return handle.DataURI
	}
	return string(handle.Payload)
}

func encodeDataURI(mime string, payload []byte) string {
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

// decodeStoredPayload reverses storablePayload. Undecodable base64 yields an
// empty payload rather than an error; the caller treats that as corrupt.
func decodeStoredPayload(encoded string) []byte {
	if !strings.HasPrefix(encoded, "data:") {
		return []byte(encoded)
	}
	idx := strings.Index(encoded, ";base64,")
	if idx < 0 {
		return []byte(encoded)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded[idx+len(";base64,"):])
	if err != nil {
		return nil
	}
	return decoded
}
