package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is a synchronous local key/value store, the client-side persistence
// used for the device player id and the active room id.
type Store interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
	Remove(key string) error
}

// FileStore keeps each key as a small file under a directory, the same way
// the CLI keeps its other local state. Values survive process restarts.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

// Get reads a key, reporting false if it has never been set
func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false
	}
	return value, true
}

// Set writes a key
func (s *FileStore) Set(key string, value string) error {
	return os.WriteFile(s.path(key), []byte(value), 0600)
}

// Remove deletes a key; removing an absent key is not an error
func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ Store = (*FileStore)(nil)

// MemStore is an in-memory Store for tests
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemStore creates an empty MemStore
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

var _ Store = (*MemStore)(nil)
