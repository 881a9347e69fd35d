package repository

import (
	"errors"
	"testing"

	"doc-editor-shell/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore("", true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBadgerStore_SetGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("app_editor_state", []byte(`{"document_id":"doc-1"}`)))

	got, err := store.Get("app_editor_state")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"document_id":"doc-1"}`), got)
}

func TestBadgerStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("does-not-exist")
	assert.True(t, errors.Is(err, domain.ErrKeyNotFound))
}

func TestBadgerStore_Overwrite(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("k", []byte("first")))
	require.NoError(t, store.Set("k", []byte("second")))

	got, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestBadgerStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("k", []byte("v")))
	require.NoError(t, store.Delete("k"))

	_, err := store.Get("k")
	assert.True(t, errors.Is(err, domain.ErrKeyNotFound))

	// Second delete of the same key is a no-op.
	assert.NoError(t, store.Delete("k"))
}

func TestBadgerStore_OnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBadgerStore(dir, false, nil)
	require.NoError(t, err)

	require.NoError(t, store.Set("k", []byte("persisted")))
	require.NoError(t, store.Close())

	// Reopen and read back.
	reopened, err := NewBadgerStore(dir, false, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), got)
}
