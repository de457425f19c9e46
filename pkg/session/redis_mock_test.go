package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// mockRedis serves the handful of commands RedisStore issues from memory.
// Anything else panics through the nil embedded client.
type mockRedis struct {
	redis.UniversalClient

	mu       sync.Mutex
	values   map[string]string
	messages []redis.XMessage
	failGet  error
	closed   bool
}

func newMockRedis() *mockRedis {
	return &mockRedis{values: map[string]string{}}
}

func (m *mockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStringCmd(ctx, "get", key)
	if m.failGet != nil {
		cmd.SetErr(m.failGet)
		return cmd
	}
	v, ok := m.values[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (m *mockRedis) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = fmt.Sprint(value)
	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			n++
		}
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(n)
	return cmd
}

func (m *mockRedis) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := fmt.Sprintf("%d-0", len(m.messages)+1)
	values := map[string]any{}
	for k, v := range a.Values.(map[string]any) {
		values[k] = fmt.Sprint(v)
	}
	m.messages = append(m.messages, redis.XMessage{ID: id, Values: values})

	cmd := redis.NewStringCmd(ctx, "xadd", a.Stream)
	cmd.SetVal(id)
	return cmd
}

func (m *mockRedis) XRevRangeN(ctx context.Context, _, _, _ string, count int64) *redis.XMessageSliceCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewXMessageSliceCmd(ctx, "xrevrange")
	var out []redis.XMessage
	for i := len(m.messages) - 1; i >= 0 && int64(len(out)) < count; i-- {
		out = append(out, m.messages[i])
	}
	cmd.SetVal(out)
	return cmd
}

func (m *mockRedis) XRead(ctx context.Context, a *redis.XReadArgs) *redis.XStreamSliceCmd {
	cmd := redis.NewXStreamSliceCmd(ctx, "xread")
	after := sequence(a.Streams[1])
	deadline := time.Now().Add(a.Block)

	for {
		m.mu.Lock()
		closed := m.closed
		var out []redis.XMessage
		for _, msg := range m.messages {
			if sequence(msg.ID) > after && int64(len(out)) < a.Count {
				out = append(out, msg)
			}
		}
		m.mu.Unlock()

		switch {
		case closed:
			cmd.SetErr(redis.ErrClosed)
			return cmd
		case len(out) > 0:
			cmd.SetVal([]redis.XStream{{Stream: a.Streams[0], Messages: out}})
			return cmd
		case ctx.Err() != nil:
			cmd.SetErr(ctx.Err())
			return cmd
		case time.Now().After(deadline):
			cmd.SetErr(redis.Nil)
			return cmd
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func (m *mockRedis) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func sequence(id string) int {
	n, _ := strconv.Atoi(strings.SplitN(id, "-", 2)[0])
	return n
}
