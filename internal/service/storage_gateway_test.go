package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"doc-editor-shell/internal/domain"
)

// fakeStore is an in-memory KeyValueStore with scriptable failures, shared
// by the service tests.
type fakeStore struct {
	data       map[string][]byte
	failSetErr error
	failOnce   bool
	setCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Set(key string, value []byte) error {
	s.setCalls++
	if s.failSetErr != nil {
		err := s.failSetErr
		if s.failOnce {
			s.failSetErr = nil
		}
		return err
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) Get(key string) ([]byte, error) {
	value, ok := s.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return value, nil
}

func (s *fakeStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}

func (s *fakeStore) Close() error { return nil }

func TestStorageGateway_EstimateSize(t *testing.T) {
	gateway := NewStorageGateway(newFakeStore(), 0, nil)

	// A JSON string of n characters serializes to n+2 bytes (quotes), each
	// counted twice.
	got := gateway.EstimateSize("abcd")
	if got != 12 {
		t.Errorf("EstimateSize() = %d, want 12", got)
	}

	// Unserializable values estimate to zero instead of failing.
	if got := gateway.EstimateSize(func() {}); got != 0 {
		t.Errorf("EstimateSize(func) = %d, want 0", got)
	}

	// Monotonic: growing the value never shrinks the estimate.
	prev := int64(0)
	for _, n := range []int{1, 10, 100, 1000} {
		got := gateway.EstimateSize(strings.Repeat("x", n))
		if got < prev {
			t.Errorf("EstimateSize shrank from %d to %d at n=%d", prev, got, n)
		}
		prev = got
	}
}

func TestStorageGateway_PutGetRoundTrip(t *testing.T) {
	gateway := NewStorageGateway(newFakeStore(), 0, nil)

	settings := domain.UserSettings{ActiveTool: "highlight", DefaultZoom: 150}
	if !gateway.Put(domain.KeyUserSettings, &settings) {
		t.Fatal("expected full write to succeed")
	}

	var got domain.UserSettings
	if !gateway.Get(domain.KeyUserSettings, &got) {
		t.Fatal("expected read to succeed")
	}
	if got.ActiveTool != "highlight" || got.DefaultZoom != 150 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestStorageGateway_GetMissingKey(t *testing.T) {
	gateway := NewStorageGateway(newFakeStore(), 0, nil)

	var out domain.UserSettings
	if gateway.Get("missing", &out) {
		t.Error("expected Get to report a missing key as false")
	}
}

// TestStorageGateway_OversizedSnapshot covers the quota contract: a snapshot
// whose estimate exceeds the ceiling is never written in full. The metadata
// is persisted with StorageSkipped set and Put reports partial storage.
func TestStorageGateway_OversizedSnapshot(t *testing.T) {
	store := newFakeStore()
	gateway := NewStorageGateway(store, 1024, nil)

	snapshot := domain.PersistedSnapshot{
		DocumentID:     "doc-1",
		Category:       domain.CategoryPDF,
		Filename:       "big.pdf",
		PayloadEncoded: "data:application/pdf;base64," + strings.Repeat("A", 4096),
		LastEdited:     time.Now(),
	}

	if gateway.Put(domain.KeyEditorState, &snapshot) {
		t.Fatal("expected oversized write to report partial storage")
	}

	var stored domain.PersistedSnapshot
	if !gateway.Get(domain.KeyEditorState, &stored) {
		t.Fatal("expected reduced snapshot to be readable")
	}
	if stored.PayloadEncoded != "" {
		t.Error("payload must not survive an oversized write")
	}
	if !stored.StorageSkipped {
		t.Error("expected StorageSkipped on the reduced snapshot")
	}
	if stored.DocumentID != "doc-1" || stored.Filename != "big.pdf" {
		t.Errorf("metadata lost in reduced snapshot: %+v", stored)
	}
}

// TestStorageGateway_QuotaErrorRetriesStripped covers the second path to
// partial storage: the estimate fits but the store itself rejects the write
// as too large. One retry with the payload stripped follows.
func TestStorageGateway_QuotaErrorRetriesStripped(t *testing.T) {
	store := newFakeStore()
	store.failSetErr = fmt.Errorf("%w: value log full", domain.ErrStoreFull)
	store.failOnce = true
	gateway := NewStorageGateway(store, 0, nil)

	snapshot := domain.PersistedSnapshot{
		DocumentID:     "doc-2",
		Category:       domain.CategoryOffice,
		PayloadEncoded: "data:text/plain;base64,aGVsbG8=",
	}

	if gateway.Put(domain.KeyEditorState, snapshot) {
		t.Fatal("expected quota failure to report partial storage")
	}
	if store.setCalls != 2 {
		t.Errorf("expected exactly one retry, got %d writes", store.setCalls)
	}

	var stored domain.PersistedSnapshot
	if !gateway.Get(domain.KeyEditorState, &stored) {
		t.Fatal("expected stripped retry to have been written")
	}
	if stored.PayloadEncoded != "" || !stored.StorageSkipped {
		t.Errorf("retry must write the reduced snapshot, got %+v", stored)
	}
}

func TestStorageGateway_NonQuotaFailure(t *testing.T) {
	store := newFakeStore()
	store.failSetErr = fmt.Errorf("disk detached")
	gateway := NewStorageGateway(store, 0, nil)

	if gateway.Put("k", map[string]string{"a": "b"}) {
		t.Error("expected failed write to return false")
	}
	if store.setCalls != 1 {
		t.Errorf("non-quota failures must not retry, got %d writes", store.setCalls)
	}
}

func TestStorageGateway_NilStore(t *testing.T) {
	gateway := NewStorageGateway(nil, 0, nil)

	if gateway.Available() {
		t.Error("nil store must report unavailable")
	}
	if gateway.Put("k", "v") {
		t.Error("Put on a nil store must return false")
	}
	var out string
	if gateway.Get("k", &out) {
		t.Error("Get on a nil store must return false")
	}
	// Must not panic.
	gateway.Remove("k")
}

func TestStorageGateway_Remove(t *testing.T) {
	store := newFakeStore()
	gateway := NewStorageGateway(store, 0, nil)

	gateway.Put("k", "v")
	gateway.Remove("k")

	var out string
	if gateway.Get("k", &out) {
		t.Error("expected key to be gone after Remove")
	}

	// Removing a missing key is a no-op.
	gateway.Remove("never-existed")
}

func TestStorageGateway_DefaultLimit(t *testing.T) {
	gateway := NewStorageGateway(newFakeStore(), 0, nil)
	if gateway.Limit() != DefaultStorageLimit {
		t.Errorf("Limit() = %d, want %d", gateway.Limit(), DefaultStorageLimit)
	}
}
