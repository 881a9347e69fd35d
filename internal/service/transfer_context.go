package service

import (
	"sync"
	"time"

	"doc-editor-shell/internal/domain"

	"github.com/google/uuid"
)

// SessionTransferContext holds the in-memory active document handle shared
// between the hand-off flow and the viewers. It is the primary channel;
// persistent storage is only the reload fallback, and the two are kept
// deliberately independent so a storage failure never degrades an in-session
// hand-off.
//
// Selections are tokenized: BeginSelection issues a token and only the most
// recently issued token may commit. A slow completion from a superseded
// selection is discarded instead of clobbering the newer document.
type SessionTransferContext struct {
	mu              sync.RWMutex
	active          *domain.FileHandle
	latestSelection string
	limit           int64
	logger          domain.Logger
}

// NewTransferContext creates an empty context. limit is the storage ceiling
// used by IsOversizedForStorage; zero falls back to the default.
func NewTransferContext(limit int64, logger domain.Logger) *SessionTransferContext {
	if limit <= 0 {
		limit = DefaultStorageLimit
	}
	return &SessionTransferContext{limit: limit, logger: logger}
}

// BeginSelection registers a new in-flight selection and returns its token.
// Issuing a new token invalidates every earlier one.
func (c *SessionTransferContext) BeginSelection() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latestSelection = uuid.New().String()
	return c.latestSelection
}

// CommitSelection installs handle as the active document, provided
// selectionID is still the latest issued token. Stale commits return false
// and leave the context untouched. A nil handle clears the active document.
func (c *SessionTransferContext) CommitSelection(selectionID string, handle *domain.FileHandle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if selectionID == "" || selectionID != c.latestSelection {
		if c.logger != nil {
			c.logger.Debug("discarding stale selection", "selection_id", selectionID)
		}
		return false
	}

	if handle == nil {
		c.active = nil
		return true
	}

	// The size estimate is recomputed on every install so it always
	// reflects the payload actually carried, two bytes per character of
	// the storable encoding.
	handle.SizeEstimateBytes = estimatePayloadSize(handle)
	if handle.SelectedAt.IsZero() {
		handle.SelectedAt = time.Now()
	}
	c.active = handle
	return true
}

// Active returns the current document handle, or nil when no document has
// been handed off. Callers share the handle by reference and must treat it
// as read-only.
func (c *SessionTransferContext) Active() *domain.FileHandle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Clear drops the active document and invalidates any in-flight selection.
func (c *SessionTransferContext) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = nil
	c.latestSelection = ""
}

// IsOversizedForStorage reports whether the active document's payload is
// too large to survive persistence. Such a document works fully in-session
// but will not be recoverable after a restart.
func (c *SessionTransferContext) IsOversizedForStorage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active != nil && c.active.SizeEstimateBytes > c.limit
}

func estimatePayloadSize(handle *domain.FileHandle) int64 {
	if handle.DataURI != "" {
		return int64(len(handle.DataURI)) * 2
	}
	if len(handle.Payload) > 0 {
		return int64(len(handle.Payload)) * 2
	}
	return 0
}
