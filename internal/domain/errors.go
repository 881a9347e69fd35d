package domain

import "errors"

// Domain errors
var (
	ErrKeyNotFound         = errors.New("key not found")
	ErrStoreFull           = errors.New("store quota exceeded")
	ErrStoreUnavailable    = errors.New("persistent store unavailable")
	ErrNoActiveDocument    = errors.New("no active document")
	ErrDocumentUnavailable = errors.New("document unavailable, re-upload required")
	ErrStaleSelection      = errors.New("selection superseded by a newer one")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
