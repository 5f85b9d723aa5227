package secretsmanager

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// KeyValueStorage is the persistence backend the vault uses for key
// material. Values are opaque strings; the vault stores base64 text.
// Absence of a key is a normal outcome, reported via the bool return,
// never an error.
//
// Implementations must be safe for concurrent use.
type KeyValueStorage interface {
	// GetValue returns the value for key, or ("", false, nil) when absent.
	GetValue(key string) (string, bool, error)
	// SaveValue stores the value under key, overwriting any prior value.
	SaveValue(key, value string) error
	// DeleteValue removes key. Deleting an absent key is not an error.
	DeleteValue(key string) error
	// Contains reports whether key is present.
	Contains(key string) (bool, error)
}

// InMemoryStorage is a map-backed KeyValueStorage. It is the default
// choice for tests and for clients that keep configuration elsewhere.
type InMemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemoryStorage creates an empty in-memory storage.
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{values: make(map[string]string)}
}

// GetValue returns the value for key, or ("", false, nil) when absent.
func (s *InMemoryStorage) GetValue(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// SaveValue stores the value under key.
func (s *InMemoryStorage) SaveValue(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// DeleteValue removes key.
func (s *InMemoryStorage) DeleteValue(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Contains reports whether key is present.
func (s *InMemoryStorage) Contains(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok, nil
}

// FileStorage is a KeyValueStorage backed by a JSON file. The file is
// created on first write and kept at mode 0600: it holds key material, so
// group and world access are stripped.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage creates a file-backed storage at path. The file is not
// touched until the first read or write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// GetValue returns the value for key, or ("", false, nil) when absent.
func (s *FileStorage) GetValue(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := config[key]
	return value, ok, nil
}

// SaveValue stores the value under key, rewriting the whole file.
func (s *FileStorage) SaveValue(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.read()
	if err != nil {
		return err
	}
	config[key] = value
	return s.write(config)
}

// DeleteValue removes key.
func (s *FileStorage) DeleteValue(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.read()
	if err != nil {
		return err
	}
	delete(config, key)
	return s.write(config)
}

// Contains reports whether key is present.
func (s *FileStorage) Contains(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.read()
	if err != nil {
		return false, err
	}
	_, ok := config[key]
	return ok, nil
}

func (s *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(data) == 0 {
		return map[string]string{}, nil
	}

	config := map[string]string{}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return config, nil
}

func (s *FileStorage) write(config map[string]string) error {
	data, err := json.MarshalIndent(config, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	// WriteFile only applies the mode on creation; existing files keep
	// whatever mode they had.
	return os.Chmod(s.path, 0o600)
}
