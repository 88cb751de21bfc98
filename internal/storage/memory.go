package storage

import (
	"context"
	"sync"
)

type Object struct {
	ContentType string
	Body        []byte
}

// MemoryStore keeps objects in process, for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
	baseURL string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]Object),
		baseURL: baseURL,
	}
}

func (s *MemoryStore) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = Object{ContentType: contentType, Body: append([]byte(nil), body...)}
	return s.baseURL + "/" + key, nil
}

func (s *MemoryStore) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	return obj, ok
}

var _ ObjectStore = (*MemoryStore)(nil)
