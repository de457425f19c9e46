package session

import (
	"context"
	"sync"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

// MemoryStore keeps values in process. Every write is reported to all
// watchers, which lets tests play the part of a second session.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]string
	watchers map[int]chan contracts.KeyValueChange
	nextID   int
	closed   bool
}

var _ contracts.KeyValueStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string]string),
		watchers: make(map[int]chan contracts.KeyValueChange),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrStoreClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.values[key] = value
	s.notify(contracts.KeyValueChange{Key: key, Value: value})
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	for _, key := range keys {
		if _, ok := s.values[key]; !ok {
			continue
		}
		delete(s.values, key)
		s.notify(contracts.KeyValueChange{Key: key, Deleted: true})
	}
	return nil
}

func (s *MemoryStore) Watch(ctx context.Context) (<-chan contracts.KeyValueChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	id := s.nextID
	s.nextID++
	ch := make(chan contracts.KeyValueChange, 64)
	s.watchers[id] = ch

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if w, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(w)
		}
	}()

	return ch, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	for id, ch := range s.watchers {
		delete(s.watchers, id)
		close(ch)
	}
	return nil
}

// notify must be called with s.mu held. Slow watchers lose changes rather
// than block writers.
func (s *MemoryStore) notify(change contracts.KeyValueChange) {
	for _, ch := range s.watchers {
		select {
		case ch <- change:
		default:
		}
	}
}
