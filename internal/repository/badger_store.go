// Package repository provides the persistent key-value store backing the
// storage gateway.
package repository

import (
	"errors"
	"fmt"

	"doc-editor-shell/internal/domain"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements domain.KeyValueStore on top of an embedded
// BadgerDB instance. Store-specific failures are mapped to domain errors so
// the gateway never has to know about badger.
type BadgerStore struct {
	db     *badger.DB
	logger domain.Logger
}

// NewBadgerStore opens (or creates) a store at dir. An empty dir with
// inMemory set opens an ephemeral store, used in development and tests.
func NewBadgerStore(dir string, inMemory bool, logger domain.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).
		WithInMemory(inMemory).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &BadgerStore{db: db, logger: logger}, nil
}

// Set persists value under key.
func (s *BadgerStore) Set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		if errors.Is(err, badger.ErrTxnTooBig) || errors.Is(err, badger.ErrValueLogSize) {
			return fmt.Errorf("%w: %v", domain.ErrStoreFull, err)
		}
		return err
	}
	return nil
}

// Get returns the value stored under key, or domain.ErrKeyNotFound.
func (s *BadgerStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *BadgerStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Close shuts down the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
