package session

import (
	"context"
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

// FileStore persists values as one JSON document. Writes replace the file
// atomically; Watch polls it so sessions of other processes are observed.
type FileStore struct {
	path     string
	interval time.Duration

	mu     sync.Mutex
	closed bool
	stop   chan struct{}
}

var _ contracts.KeyValueStore = (*FileStore)(nil)

func NewFileStore(path string, interval time.Duration) *FileStore {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileStore{path: path, interval: interval, stop: make(chan struct{})}
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, ErrStoreClosed
	}
	values, err := s.read()
	if err != nil {
		return "", false, ErrStoreRead.WithDetail("key", key).WithCause(err)
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	return s.update(key, func(values map[string]string) {
		values[key] = value
	})
}

func (s *FileStore) Delete(_ context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.update(keys[0], func(values map[string]string) {
		for _, key := range keys {
			delete(values, key)
		}
	})
}

func (s *FileStore) update(key string, fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	values, err := s.read()
	if err != nil {
		return ErrStoreRead.WithDetail("key", key).WithCause(err)
	}
	fn(values)
	if err := s.write(values); err != nil {
		return ErrStoreWrite.WithDetail("key", key).WithCause(err)
	}
	return nil
}

func (s *FileStore) Watch(ctx context.Context) (<-chan contracts.KeyValueChange, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}
	last, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return nil, ErrStoreRead.WithDetail("key", "*").WithCause(err)
	}

	ch := make(chan contracts.KeyValueChange, 16)
	go s.poll(ctx, last, ch)
	return ch, nil
}

func (s *FileStore) poll(ctx context.Context, last map[string]string, ch chan<- contracts.KeyValueChange) {
	defer close(ch)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		current, err := s.read()
		s.mu.Unlock()
		if err != nil {
			continue
		}

		for _, change := range diff(last, current) {
			select {
			case ch <- change:
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
		last = current
	}
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.stop)
	}
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// diff lists the changes turning before into after, sets first.
func diff(before, after map[string]string) []contracts.KeyValueChange {
	var changes []contracts.KeyValueChange
	for _, key := range slices.Sorted(maps.Keys(after)) {
		value := after[key]
		if old, ok := before[key]; !ok || old != value {
			changes = append(changes, contracts.KeyValueChange{Key: key, Value: value})
		}
	}
	for _, key := range slices.Sorted(maps.Keys(before)) {
		if _, ok := after[key]; !ok {
			changes = append(changes, contracts.KeyValueChange{Key: key, Deleted: true})
		}
	}
	return changes
}
