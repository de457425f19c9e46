package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shuldan/underc0de-admin/pkg/config"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type sessionCleared struct {
	Reason string
}

type routeRequested struct {
	Path string
}

type sessionListener struct {
	mu     sync.Mutex
	events []sessionCleared
}

func (l *sessionListener) Handle(_ context.Context, e sessionCleared) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *sessionListener) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

type recordingErrorHandler struct {
	err error
}

func (r *recordingErrorHandler) Handle(_ any, _ any, err error) { r.err = err }

type recordingPanicHandler struct {
	value any
}

func (r *recordingPanicHandler) Handle(_ any, _ any, v any, _ []byte) { r.value = v }

func TestBus_PublishToMethodAndFunctionListeners(t *testing.T) {
	b := New()
	listener := &sessionListener{}
	var paths []string

	if err := b.Subscribe((*sessionCleared)(nil), listener); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := b.Subscribe((*routeRequested)(nil), func(_ context.Context, e routeRequested) error {
		paths = append(paths, e.Path)
		return nil
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	_ = b.Publish(context.Background(), sessionCleared{Reason: "401"})
	_ = b.Publish(context.Background(), routeRequested{Path: "/login"})

	if listener.count() != 1 || listener.events[0].Reason != "401" {
		t.Errorf("unexpected session events %v", listener.events)
	}
	if len(paths) != 1 || paths[0] != "/login" {
		t.Errorf("unexpected paths %v", paths)
	}
}

func TestBus_SubscribeValidation(t *testing.T) {
	b := New()

	testCases := []struct {
		name      string
		eventType any
		listener  any
		err       error
	}{
		{"nil event type", nil, &sessionListener{}, ErrInvalidEventType},
		{"non pointer", sessionCleared{}, &sessionListener{}, ErrInvalidEventType},
		{"no handle method", (*sessionCleared)(nil), struct{}{}, ErrInvalidListener},
		{"bad function", (*sessionCleared)(nil), func(sessionCleared) {}, ErrInvalidListenerFunction},
		{"type mismatch", (*routeRequested)(nil), &sessionListener{}, ErrListenerTypeMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := b.Subscribe(tc.eventType, tc.listener); !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestBus_ListenerErrorsAndPanics(t *testing.T) {
	errs := &recordingErrorHandler{}
	panics := &recordingPanicHandler{}
	b := New(WithErrorHandler(errs), WithPanicHandler(panics))

	failure := errors.New("navigation failed")
	_ = b.Subscribe((*routeRequested)(nil), func(context.Context, routeRequested) error { return failure })
	_ = b.Subscribe((*sessionCleared)(nil), func(context.Context, sessionCleared) error { panic("boom") })

	if err := b.Publish(context.Background(), routeRequested{}); !errors.Is(err, failure) {
		t.Errorf("sync publish should return the listener error, got %v", err)
	}
	if !errors.Is(errs.err, failure) {
		t.Error("error handler should receive the listener error")
	}

	_ = b.Publish(context.Background(), sessionCleared{})
	if panics.value != "boom" {
		t.Errorf("panic handler should receive the panic value, got %v", panics.value)
	}
}

func TestBus_AsyncModeDrainsOnClose(t *testing.T) {
	b := New(WithAsyncMode(2))
	listener := &sessionListener{}
	_ = b.Subscribe((*sessionCleared)(nil), listener)

	for i := 0; i < 10; i++ {
		if err := b.Publish(context.Background(), sessionCleared{}); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		_ = b.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("close did not return")
	}

	if listener.count() != 10 {
		t.Errorf("expected 10 delivered events, got %d", listener.count())
	}
}

func TestBus_Closed(t *testing.T) {
	b := New()
	_ = b.Close()

	if err := b.Subscribe((*sessionCleared)(nil), &sessionListener{}); !errors.Is(err, ErrBusClosed) {
		t.Errorf("expected ErrBusClosed, got %v", err)
	}
	if err := b.Publish(context.Background(), sessionCleared{}); !errors.Is(err, ErrPublishOnClosedBus) {
		t.Errorf("expected ErrPublishOnClosedBus, got %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}

func TestModule_AsyncWorkersFromConfig(t *testing.T) {
	b := registry.NewBuilder()
	_ = b.Instance(contracts.ConfigModuleName, config.NewMapConfig(map[string]any{
		"events": map[string]any{"async_workers": 3},
	}))
	if err := NewModule().Register(b); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	r, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	resolved, err := registry.Resolve[contracts.Bus](r, contracts.EventBusModuleName)
	if err != nil {
		t.Fatalf("bus not resolvable: %v", err)
	}
	defer func() { _ = resolved.Close() }()

	if !resolved.(*bus).asyncMode {
		t.Error("events.async_workers should switch the bus to async mode")
	}
	if cap(resolved.(*bus).eventChan) != 30 {
		t.Errorf("expected a queue sized for 3 workers, got %d", cap(resolved.(*bus).eventChan))
	}
}
