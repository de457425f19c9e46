package registry

import (
	"reflect"
	"sort"
	"sync"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type factoryFunc = func(c contracts.DIResolver) (any, error)

// Builder collects registrations during bootstrap. Build finalizes it into an
// immutable Registry; any registration after that fails.
type Builder struct {
	mu        sync.Mutex
	instances map[string]any
	factories map[string]factoryFunc
	built     bool
}

var _ contracts.DIContainer = (*Builder)(nil)

func NewBuilder() *Builder {
	return &Builder{
		instances: make(map[string]any),
		factories: make(map[string]factoryFunc),
	}
}

func (b *Builder) Has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasLocked(key)
}

func (b *Builder) Instance(key string, instance any) error {
	if isNil(instance) {
		return ErrUndefinedDependency.WithDetail("key", key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkWritable(key); err != nil {
		return err
	}
	b.instances[key] = instance
	return nil
}

func (b *Builder) Factory(key string, factory func(c contracts.DIResolver) (any, error)) error {
	if factory == nil {
		return ErrUndefinedDependency.WithDetail("key", key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkWritable(key); err != nil {
		return err
	}
	b.factories[key] = factory
	return nil
}

// Build runs every factory exactly once and returns the finalized registry.
func (b *Builder) Build() (*Registry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return nil, ErrRegistryFrozen.WithDetail("key", "*")
	}

	s := &buildSession{
		builder:   b,
		resolved:  make(map[string]any, len(b.instances)+len(b.factories)),
		resolving: make(map[string]bool),
	}
	for k, v := range b.instances {
		s.resolved[k] = v
	}

	keys := make([]string, 0, len(b.factories))
	for k := range b.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := s.Resolve(key); err != nil {
			return nil, err
		}
	}

	b.built = true
	return &Registry{entries: s.resolved}, nil
}

func (b *Builder) hasLocked(key string) bool {
	_, hasInstance := b.instances[key]
	_, hasFactory := b.factories[key]
	return hasInstance || hasFactory
}

func (b *Builder) checkWritable(key string) error {
	if b.built {
		return ErrRegistryFrozen.WithDetail("key", key)
	}
	if b.hasLocked(key) {
		return ErrDuplicateKey.WithDetail("key", key)
	}
	return nil
}

// buildSession resolves factories while the builder lock is held.
type buildSession struct {
	builder   *Builder
	resolved  map[string]any
	resolving map[string]bool
}

func (s *buildSession) Has(key string) bool {
	return s.builder.hasLocked(key)
}

func (s *buildSession) Resolve(key string) (any, error) {
	if instance, ok := s.resolved[key]; ok {
		return instance, nil
	}

	if s.resolving[key] {
		return nil, ErrCircularDependency.WithDetail("key", key)
	}

	factory, ok := s.builder.factories[key]
	if !ok {
		return nil, ErrNotFound.WithDetail("key", key)
	}

	s.resolving[key] = true
	defer delete(s.resolving, key)

	instance, err := factory(s)
	if err != nil {
		return nil, ErrFactoryFailed.WithDetail("key", key).WithCause(err)
	}
	if isNil(instance) {
		return nil, ErrUndefinedDependency.WithDetail("key", key)
	}

	s.resolved[key] = instance
	return instance, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
