package service

import (
	"encoding/json"
	"errors"

	"doc-editor-shell/internal/domain"
)

// DefaultStorageLimit is the conservative write ceiling for the persistent
// store. Tunable via config; it is a heuristic default, not a contract.
const DefaultStorageLimit = 5 * 1024 * 1024

// StorageGatewayService wraps the persistent key-value store with quota and
// failure handling. Every write is a potential partial failure; the gateway
// converts that into a boolean result plus graceful degradation. No method
// ever returns or panics with an error.
type StorageGatewayService struct {
	store  domain.KeyValueStore
	limit  int64
	logger domain.Logger
}

// NewStorageGateway creates a gateway over store. A nil store is allowed
// and makes every operation a safe no-op, for contexts where persistence
// is entirely unavailable.
func NewStorageGateway(store domain.KeyValueStore, limit int64, logger domain.Logger) *StorageGatewayService {
	if limit <= 0 {
		limit = DefaultStorageLimit
	}
	return &StorageGatewayService{
		store:  store,
		limit:  limit,
		logger: logger,
	}
}

// Available reports whether the backing store can be used at all.
func (g *StorageGatewayService) Available() bool {
	return g.store != nil
}

// Limit returns the storage ceiling in bytes.
func (g *StorageGatewayService) Limit() int64 {
	return g.limit
}

// EstimateSize returns the serialized size of value assuming two bytes per
// character, as required by stores backed by UTF-16 string cells. Pure;
// returns 0 when value cannot be serialized.
func (g *StorageGatewayService) EstimateSize(value interface{}) int64 {
	serialized, err := json.Marshal(value)
	if err != nil {
		return 0
	}
	return int64(len(serialized)) * 2
}

// Put attempts to persist value under key.
//
// Oversized document snapshots are short-circuited: the payload field is
// removed, StorageSkipped is set, the reduced object is written and false
// is returned to signal partial storage. A quota failure on the full write
// triggers one retry with the same reduced-object strategy. Any other
// failure returns false. Only an unencumbered full write returns true.
func (g *StorageGatewayService) Put(key string, value interface{}) (ok bool) {
	// The contract is that Put never propagates a failure to its caller.
	defer func() {
		if r := recover(); r != nil {
			g.warn("storage write panicked", "key", key, "panic", r)
			ok = false
		}
	}()

	if !g.Available() {
		return false
	}

	snapshot, isSnapshot := asSnapshot(value)

	if isSnapshot && snapshot.PayloadEncoded != "" && g.EstimateSize(value) > g.limit {
		g.warn("snapshot exceeds storage ceiling, storing metadata only",
			"key", key, "document_id", snapshot.DocumentID)
		g.writeValue(key, snapshot.Stripped())
		return false
	}

	if err := g.writeValue(key, value); err != nil {
		if errors.Is(err, domain.ErrStoreFull) && isSnapshot && snapshot.PayloadEncoded != "" {
			g.warn("store quota exceeded, retrying with payload stripped",
				"key", key, "document_id", snapshot.DocumentID)
			if retryErr := g.writeValue(key, snapshot.Stripped()); retryErr != nil {
				g.warn("stripped retry also failed", "key", key, "error", retryErr)
			}
			return false
		}
		g.warn("storage write failed", "key", key, "error", err)
		return false
	}

	return true
}

// Get reads and deserializes the value under key into out. Returns false,
// without touching out, when the key is missing or the value cannot be
// decoded.
func (g *StorageGatewayService) Get(key string, out interface{}) bool {
	if !g.Available() {
		return false
	}

	raw, err := g.store.Get(key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			g.warn("storage read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		g.warn("stored value is not decodable", "key", key, "error", err)
		return false
	}
	return true
}

// Remove deletes key best-effort. Failures are swallowed; removing a
// missing key is a no-op.
func (g *StorageGatewayService) Remove(key string) {
	if !g.Available() {
		return
	}
	if err := g.store.Delete(key); err != nil {
		g.warn("storage delete failed", "key", key, "error", err)
	}
}

func (g *StorageGatewayService) writeValue(key string, value interface{}) error {
	serialized, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return g.store.Set(key, serialized)
}

func (g *StorageGatewayService) warn(msg string, fields ...interface{}) {
	if g.logger != nil {
		g.logger.Warn(msg, fields...)
	}
}

// asSnapshot recognizes document snapshots passed by value or by pointer.
func asSnapshot(value interface{}) (domain.PersistedSnapshot, bool) {
	switch v := value.(type) {
	case domain.PersistedSnapshot:
		return v, true
	case *domain.PersistedSnapshot:
		if v != nil {
			return *v, true
		}
	}
	return domain.PersistedSnapshot{}, false
}
