package events

import (
	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type loggingPanicHandler struct {
	logger contracts.Logger
}

func NewLoggingPanicHandler(logger contracts.Logger) PanicHandler {
	return &loggingPanicHandler{logger: logger}
}

func (d *loggingPanicHandler) Handle(event any, listener any, panicValue any, stack []byte) {
	if d.logger == nil {
		return
	}
	d.logger.Critical("event listener panicked",
		"event", event,
		"listener", listener,
		"panic_value", panicValue,
		"stack", string(stack),
	)
}

type loggingErrorHandler struct {
	logger contracts.Logger
}

func NewLoggingErrorHandler(logger contracts.Logger) ErrorHandler {
	return &loggingErrorHandler{logger: logger}
}

func (d *loggingErrorHandler) Handle(event any, listener any, err error) {
	if d.logger == nil {
		return
	}
	d.logger.Error("event listener failed", "event", event, "listener", listener, "error", err)
}
