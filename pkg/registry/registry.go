package registry

import (
	"fmt"
	"sort"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

// Registry is the finalized, read-only dependency map. It is safe for
// concurrent use because nothing mutates it after Build.
type Registry struct {
	entries map[string]any
}

var _ contracts.DIResolver = (*Registry)(nil)

func (r *Registry) Has(key string) bool {
	_, ok := r.entries[key]
	return ok
}

func (r *Registry) Resolve(key string) (any, error) {
	instance, ok := r.entries[key]
	if !ok {
		return nil, ErrNotFound.WithDetail("key", key)
	}
	return instance, nil
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve looks key up and asserts it to T.
func Resolve[T any](r contracts.DIResolver, key string) (T, error) {
	var zero T

	raw, err := r.Resolve(key)
	if err != nil {
		return zero, err
	}

	typed, ok := raw.(T)
	if !ok {
		return zero, ErrTypeMismatch.
			WithDetail("key", key).
			WithDetail("actual", fmt.Sprintf("%T", raw)).
			WithDetail("expected", fmt.Sprintf("%T", (*T)(nil))[1:])
	}
	return typed, nil
}

// MustResolve panics when key is missing or has the wrong type. Use it only
// for wiring that is fixed at bootstrap.
func MustResolve[T any](r contracts.DIResolver, key string) T {
	v, err := Resolve[T](r, key)
	if err != nil {
		panic(err)
	}
	return v
}
