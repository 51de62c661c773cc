package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory ObjectStore used in tests and local development
// without a media directory.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(_ context.Context, _ uint, content []byte, _ string) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("no file content")
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.objects[id] = content
	s.mu.Unlock()
	return fmt.Sprintf("/media/i/%s/master.jpg", id), nil
}

func (s *MemoryStore) Destroy(_ context.Context, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[objectID]; !ok {
		return fmt.Errorf("object %s not found", objectID)
	}
	delete(s.objects, objectID)
	return nil
}

// Len reports how many objects the store currently holds.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
