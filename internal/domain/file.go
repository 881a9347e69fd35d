package domain

import (
	"strings"
	"time"
)

// Storage keys for the persistent store. One key for UI preferences, one for
// the single most-recent document snapshot; each hand-off overwrites the
// previous snapshot.
const (
	KeyUserSettings = "app_user_settings"
	KeyEditorState  = "app_editor_state"
)

// PDFMagic is the signature required at the start of every PDF payload.
const PDFMagic = "%PDF-"

// FileHandle is the in-memory representation of the user's currently
// selected document. It lives in the transfer context for the session and
// is replaced wholesale when a new file is selected.
type FileHandle struct {
	DocumentID string   `json:"document_id"`
	Filename   string   `json:"filename"`
	Category   Category `json:"category"`
	MIMEType   string   `json:"mime_type"`

	// Payload holds the raw bytes (or UTF-8 text) for the session lifetime.
	Payload []byte `json:"-"`
	// DataURI is the display-ready encoded form for renderable binaries.
	DataURI string `json:"-"`

	SizeEstimateBytes int64     `json:"size_estimate_bytes"`
	SelectedAt        time.Time `json:"selected_at"`
}

// Validate checks required FileHandle fields.
func (f *FileHandle) Validate() error {
	if f.DocumentID == "" {
		return &ValidationError{Field: "document_id", Message: "document ID is required"}
	}
	if f.Category == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	if f.SizeEstimateBytes < 0 {
		return &ValidationError{Field: "size_estimate_bytes", Message: "size estimate cannot be negative"}
	}
	return nil
}

// HasPDFMagic reports whether the payload starts with the PDF signature.
func HasPDFMagic(payload []byte) bool {
	return len(payload) >= len(PDFMagic) && strings.HasPrefix(string(payload[:len(PDFMagic)]), PDFMagic)
}

// PersistedSnapshot is the durable best-effort counterpart of a FileHandle.
// If StorageSkipped is true the payload was intentionally omitted for size;
// readers must fall back to the transfer context, which only works within
// the same session.
type PersistedSnapshot struct {
	DocumentID     string    `json:"document_id"`
	Category       Category  `json:"category"`
	Filename       string    `json:"filename,omitempty"`
	PayloadEncoded string    `json:"payload_encoded,omitempty"`
	StorageSkipped bool      `json:"storage_skipped"`
	LastEdited     time.Time `json:"last_edited"`
}

// Validate checks the snapshot invariant: a skipped snapshot carries no payload.
func (s *PersistedSnapshot) Validate() error {
	if s.DocumentID == "" {
		return &ValidationError{Field: "document_id", Message: "document ID is required"}
	}
	if s.StorageSkipped && s.PayloadEncoded != "" {
		return &ValidationError{Field: "payload_encoded", Message: "skipped snapshot must not carry a payload"}
	}
	return nil
}

// Stripped returns a copy of the snapshot with the payload removed and the
// skipped flag set. Used when the full payload does not fit in storage.
func (s PersistedSnapshot) Stripped() PersistedSnapshot {
	s.PayloadEncoded = ""
	s.StorageSkipped = true
	return s
}

// StorageOutcome describes how a hand-off's persistence attempt ended.
type StorageOutcome string

const (
	StorageFull        StorageOutcome = "full"
	StoragePartial     StorageOutcome = "partial"
	StorageUnavailable StorageOutcome = "unavailable"
)

// HandoffResult is the navigation contract returned to the client after a
// successful hand-off. DocumentID and Category are the only parameters the
// viewer needs; everything else is advisory.
type HandoffResult struct {
	DocumentID        string         `json:"document_id"`
	Category          Category       `json:"category"`
	Filename          string         `json:"filename"`
	MIMEType          string         `json:"mime_type,omitempty"`
	Storage           StorageOutcome `json:"storage"`
	SizeEstimateBytes int64          `json:"size_estimate_bytes"`
	// Oversized means the payload exceeds the storage ceiling: edits and
	// state will not survive a reload, and the client should warn on unload.
	Oversized bool `json:"oversized"`
}

// ResolvedDocument is what the viewer receives when it asks for the active
// document: the snapshot plus whichever payload source was available.
type ResolvedDocument struct {
	DocumentID string   `json:"document_id"`
	Category   Category `json:"category"`
	Filename   string   `json:"filename,omitempty"`
	MIMEType   string   `json:"mime_type,omitempty"`

	// Source is "storage" when the payload came from the persisted
	// snapshot, "memory" when it came from the transfer context.
	Source  string `json:"source"`
	Payload []byte `json:"-"`
}
