package exportjob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage receives rendered artifacts. Keys are slash-separated paths
// relative to the storage root.
type Storage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// DirStorage writes artifacts under a local directory.
type DirStorage struct {
	Root string
}

func (s DirStorage) Put(ctx context.Context, key string, body []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// MemStorage keeps artifacts in memory, for tests and dry runs.
type MemStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{data: map[string][]byte{}}
}

func (s *MemStorage) Put(ctx context.Context, key string, body []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = body
	return ctx.Err()
}

func (s *MemStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[key]
	return b, ok
}

func (s *MemStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
