// Package kv provides the key-value persistence layer.
//
// The application state is a handful of independent collections, each
// stored under its own key. The Store interface abstracts the backend;
// FileStore is the only implementation, keeping one JSON file per key
// under a directory.
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is a typed-JSON key-value store. Values are marshaled on Set and
// unmarshaled into the caller's type on Get.
type Store interface {
	// Get reads the value stored under key into the given pointer. It
	// returns false, with into untouched, when the key is absent.
	Get(key string, into any) (bool, error)
	// Set writes the value under key, replacing any previous value, and
	// notifies the key's subscribers.
	Set(key string, v any) error
	// Subscribe registers fn to run after every successful Set on key.
	// The returned function cancels the subscription.
	Subscribe(key string, fn func()) (cancel func())
}

// FileStore is a Store keeping one pretty-printed JSON file per key in a
// directory. Reads always go to disk, so several processes can share a
// store directory as long as they tolerate last-writer-wins.
type FileStore struct {
	dir string

	mu   sync.Mutex
	subs map[string]map[int]func()
	next int
}

// NewFileStore opens (and creates if needed) a store directory.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create store directory %q: %w", dir, err)
	}
	return &FileStore{dir: dir, subs: make(map[string]map[int]func())}, nil
}

// Dir returns the store's directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements Store.
func (s *FileStore) Get(key string, into any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot read %q: %w", key, err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("invalid content under %q: %w", key, err)
	}
	return true, nil
}

// Set implements Store. The file is written through a temp file and a
// rename so readers never observe a half-written value.
func (s *FileStore) Set(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal value for %q: %w", key, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", key, err)
	}

	s.notify(key)
	return nil
}

// Subscribe implements Store.
func (s *FileStore) Subscribe(key string, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func())
	}
	id := s.next
	s.next++
	s.subs[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

func (s *FileStore) notify(key string) {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

var _ Store = (*FileStore)(nil)
