package contracts

import "context"

const (
	SessionTokenKey = "token"
	SessionUserKey  = "user"
)

type KeyValueChange struct {
	Key     string
	Value   string
	Deleted bool
}

// KeyValueStore is the persistent storage holding the session credential.
// Watch reports writes made by other processes sharing the same store.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Watch(ctx context.Context) (<-chan KeyValueChange, error)
	Close() error
}

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type SessionInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Navigator interface {
	Navigate(ctx context.Context, path string, reason string) error
}
