package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var _ Store = (*FileStore)(nil)

// FileStore persists the session record as a single JSON file. Writes go
// through a temp file and a rename so the record on disk is always either
// the previous session or the next one, never a partial write.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store persisting to the given path
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("session file path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get(ctx context.Context) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		// A missing record is the empty session
		return Session{}, nil
	}

	var current Session
	if err := json.Unmarshal(raw, &current); err != nil {
		// A corrupted record is treated the same as no record
		return Session{}, nil
	}
	return current, nil
}

func (s *FileStore) Set(ctx context.Context, next Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session record folder: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session record: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session record: %w", err)
	}
	return nil
}
