package domain

import (
	"context"
	"io"
)

// KeyValueStore is the persistent key-value store behind the storage
// gateway. Implementations map their own not-found and quota errors to
// ErrKeyNotFound and ErrStoreFull.
type KeyValueStore interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	Close() error
}

// StorageGateway is the quota-safe wrapper over the persistent store.
// No operation ever propagates an error; degradation is reported through
// boolean results.
type StorageGateway interface {
	// EstimateSize returns the serialized size of value in bytes under the
	// two-bytes-per-character storage cell assumption. Pure.
	EstimateSize(value interface{}) int64
	// Put persists value under key. Returns false when the write was
	// skipped, degraded to metadata-only, or failed outright.
	Put(key string, value interface{}) bool
	// Get reads key into out. Returns false when absent or undecodable.
	Get(key string, out interface{}) bool
	// Remove deletes key best-effort.
	Remove(key string)
	// Available reports whether the backing store can be used at all.
	Available() bool
	// Limit returns the storage ceiling in bytes.
	Limit() int64
}

// TransferContext holds the single active FileHandle for the session,
// decoupled from persistence so an unpersistable payload stays usable.
type TransferContext interface {
	// BeginSelection registers a new selection and returns its ID. Starting
	// a new selection supersedes any in-flight one.
	BeginSelection() string
	// CommitSelection installs the handle if selectionID is still current.
	// A stale commit is discarded and returns false.
	CommitSelection(selectionID string, handle *FileHandle) bool
	// Active returns the current handle, or nil when nothing is selected.
	Active() *FileHandle
	// Clear drops the active handle and resets the size estimate.
	Clear()
	// IsOversizedForStorage reports whether the active payload exceeds the
	// storage ceiling and will therefore not survive a reload.
	IsOversizedForStorage() bool
}

// HandoffService orchestrates the transition from "file selected" to
// "file open in viewer".
type HandoffService interface {
	Open(ctx context.Context, filename, declaredMIME string, file io.Reader) (*HandoffResult, error)
	// Resolve returns the active document's content, preferring the
	// persisted snapshot and falling back to the transfer context.
	Resolve(documentID string) (*ResolvedDocument, error)
	// UnsavedActive reports whether the active document would be lost on
	// reload (oversized or persistence failed).
	UnsavedActive() bool
}

// PreferenceService manages persisted UI preferences.
type PreferenceService interface {
	GetSettings() (*UserSettings, error)
	UpdateSettings(settings *UserSettings) (*UserSettings, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetDataDir() string
	GetStorageLimit() int64
	GetMaxFileSize() int64
	StorageInMemory() bool
}
