package events

import "time"

type PanicHandler interface {
	Handle(event any, listener any, panicValue any, stack []byte)
}

type ErrorHandler interface {
	Handle(event any, listener any, err error)
}

type Option func(*busConfig)

type busConfig struct {
	panicHandler   PanicHandler
	errorHandler   ErrorHandler
	asyncMode      bool
	workerCount    int
	publishTimeout time.Duration
}

func WithPanicHandler(h PanicHandler) Option {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(c *busConfig) {
		c.errorHandler = h
	}
}

// WithAsyncMode dispatches events to a worker pool instead of the publisher's
// goroutine.
func WithAsyncMode(workers int) Option {
	return func(c *busConfig) {
		if workers < 1 {
			workers = 1
		}
		c.asyncMode = true
		c.workerCount = workers
	}
}
