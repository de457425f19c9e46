package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

const (
	redisStreamMaxLen = 256
	redisReadBlock    = 2 * time.Second
)

// RedisStore keeps values under prefix and appends every write to a capped
// stream, which Watch tails.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	stream string
	block  time.Duration
}

var _ contracts.KeyValueStore = (*RedisStore)(nil)

func NewRedisStore(client redis.UniversalClient, prefix, stream string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, stream: stream, block: redisReadBlock}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, ErrStoreRead.WithDetail("key", key).WithCause(err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return ErrStoreWrite.WithDetail("key", key).WithCause(err)
	}
	return s.publish(ctx, contracts.KeyValueChange{Key: key, Value: value})
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.prefix + key
	}
	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return ErrStoreWrite.WithDetail("key", keys[0]).WithCause(err)
	}

	for _, key := range keys {
		if err := s.publish(ctx, contracts.KeyValueChange{Key: key, Deleted: true}); err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisStore) publish(ctx context.Context, change contracts.KeyValueChange) error {
	deleted := "0"
	if change.Deleted {
		deleted = "1"
	}

	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: redisStreamMaxLen,
		Approx: true,
		Values: map[string]any{"key": change.Key, "value": change.Value, "deleted": deleted},
	}).Err()
	if err != nil {
		return ErrStoreWrite.WithDetail("key", change.Key).WithCause(err)
	}
	return nil
}

// Watch starts after the newest entry present when called.
func (s *RedisStore) Watch(ctx context.Context) (<-chan contracts.KeyValueChange, error) {
	lastID := "0"
	latest, err := s.client.XRevRangeN(ctx, s.stream, "+", "-", 1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, ErrStoreRead.WithDetail("key", s.stream).WithCause(err)
	}
	if len(latest) > 0 {
		lastID = latest[0].ID
	}

	ch := make(chan contracts.KeyValueChange, 16)
	go s.tail(ctx, lastID, ch)
	return ch, nil
}

func (s *RedisStore) tail(ctx context.Context, lastID string, ch chan<- contracts.KeyValueChange) {
	defer close(ch)

	for ctx.Err() == nil {
		streams, err := s.client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{s.stream, lastID},
			Count:   16,
			Block:   s.block,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, redis.ErrClosed) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.block):
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				select {
				case ch <- decodeChange(msg.Values):
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func decodeChange(values map[string]any) contracts.KeyValueChange {
	str := func(k string) string {
		v, _ := values[k].(string)
		return v
	}
	return contracts.KeyValueChange{
		Key:     str("key"),
		Value:   str("value"),
		Deleted: str("deleted") == "1",
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
