package events

import (
	"context"
	"reflect"
	"runtime/debug"
	"sync"
	"time"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

var (
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
)

type listenerAdapter struct {
	call      func(ctx context.Context, event any) error
	eventType reflect.Type
	listener  any
}

func newListenerAdapter(listener any) (*listenerAdapter, error) {
	v := reflect.ValueOf(listener)
	if !v.IsValid() {
		return nil, ErrInvalidListener
	}

	if v.Kind() == reflect.Func {
		if err := checkSignature(v.Type()); err != nil {
			return nil, ErrInvalidListenerFunction.WithDetail("reason", err.Error())
		}
		return &listenerAdapter{
			eventType: v.Type().In(1),
			listener:  listener,
			call: func(ctx context.Context, event any) error {
				return asError(v.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(event)}))
			},
		}, nil
	}

	method := v.MethodByName("Handle")
	if !method.IsValid() {
		return nil, ErrInvalidListener
	}
	if err := checkSignature(method.Type()); err != nil {
		return nil, ErrInvalidListenerMethod.WithDetail("reason", err.Error())
	}
	return &listenerAdapter{
		eventType: method.Type().In(1),
		listener:  listener,
		call: func(ctx context.Context, event any) error {
			return asError(method.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(event)}))
		},
	}, nil
}

type signatureError string

func (s signatureError) Error() string { return string(s) }

func checkSignature(fn reflect.Type) error {
	if fn.NumIn() != 2 || fn.NumOut() != 1 {
		return signatureError("expected two arguments and one result")
	}
	if !fn.In(0).Implements(contextType) {
		return signatureError("first argument must implement context.Context")
	}
	if fn.Out(0) != errorType {
		return signatureError("return type must be error")
	}
	return nil
}

func asError(results []reflect.Value) error {
	if err, ok := results[0].Interface().(error); ok {
		return err
	}
	return nil
}

type eventTask struct {
	ctx     context.Context
	event   any
	adapter *listenerAdapter
}

type bus struct {
	mu             sync.RWMutex
	listeners      map[reflect.Type][]*listenerAdapter
	closed         bool
	wg             sync.WaitGroup
	panicHandler   PanicHandler
	errorHandler   ErrorHandler
	eventChan      chan eventTask
	asyncMode      bool
	publishTimeout time.Duration
}

func New(opts ...Option) contracts.Bus {
	cfg := &busConfig{
		workerCount:    1,
		publishTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.panicHandler == nil {
		cfg.panicHandler = NewLoggingPanicHandler(nil)
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = NewLoggingErrorHandler(nil)
	}

	b := &bus{
		listeners:      make(map[reflect.Type][]*listenerAdapter),
		panicHandler:   cfg.panicHandler,
		errorHandler:   cfg.errorHandler,
		asyncMode:      cfg.asyncMode,
		publishTimeout: cfg.publishTimeout,
	}

	if cfg.asyncMode {
		b.eventChan = make(chan eventTask, cfg.workerCount*10)
		for i := 0; i < cfg.workerCount; i++ {
			b.wg.Add(1)
			go b.worker()
		}
	}

	return b
}

// Subscribe registers listener for events of the struct type pointed to by
// eventType, e.g. (*navigation.Requested)(nil).
func (b *bus) Subscribe(eventType any, listener any) error {
	t := reflect.TypeOf(eventType)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return ErrInvalidEventType
	}

	adapter, err := newListenerAdapter(listener)
	if err != nil {
		return err
	}
	if adapter.eventType != t.Elem() {
		return ErrListenerTypeMismatch.
			WithDetail("expected", t.Elem().String()).
			WithDetail("actual", adapter.eventType.String())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}
	b.listeners[t.Elem()] = append(b.listeners[t.Elem()], adapter)
	return nil
}

func (b *bus) Publish(ctx context.Context, event any) error {
	if event == nil {
		return nil
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrPublishOnClosedBus
	}
	adapters := b.listeners[reflect.TypeOf(event)]
	b.mu.RUnlock()

	for _, adapter := range adapters {
		if !b.asyncMode {
			if err := b.dispatch(ctx, event, adapter); err != nil {
				return err
			}
			continue
		}

		select {
		case b.eventChan <- eventTask{ctx: ctx, event: event, adapter: adapter}:
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.publishTimeout):
			return ErrEventChannelBlocked
		}
	}

	return nil
}

func (b *bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	if b.eventChan != nil {
		close(b.eventChan)
	}
	b.wg.Wait()
	return nil
}

func (b *bus) worker() {
	defer b.wg.Done()
	for task := range b.eventChan {
		_ = b.dispatch(task.ctx, task.event, task.adapter)
	}
}

func (b *bus) dispatch(ctx context.Context, event any, adapter *listenerAdapter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.panicHandler.Handle(event, adapter.listener, r, debug.Stack())
		}
	}()

	if err = adapter.call(ctx, event); err != nil {
		b.errorHandler.Handle(event, adapter.listener, err)
	}
	return err
}
