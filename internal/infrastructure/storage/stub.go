package storage

import (
	"context"
	"io"
	"sync"
)

// StubStorage keeps uploads in memory. Used in development and tests when
// no bucket is configured.
type StubStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string
}

// NewStubStorage creates an empty in-memory store
func NewStubStorage(baseURL string) *StubStorage {
	return &StubStorage{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

func (s *StubStorage) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return s.baseURL + "/" + key, nil
}

func (s *StubStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Has reports whether a key is stored, for tests
func (s *StubStorage) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}
