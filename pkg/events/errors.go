package events

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newEventCode = errors.WithPrefix("EVENTS")

var (
	ErrInvalidListener         = newEventCode().New("listener must be func(context.Context, T) error or have Handle(context.Context, T) error method")
	ErrInvalidListenerFunction = newEventCode().New("listener function must have signature func(context.Context, T) error: {{.reason}}")
	ErrInvalidListenerMethod   = newEventCode().New("Handle method must have signature Handle(context.Context, T) error: {{.reason}}")
	ErrInvalidEventType        = newEventCode().New("eventType must be a pointer to struct, e.g. (*MyEvent)(nil)")
	ErrListenerTypeMismatch    = newEventCode().New("listener handles {{.actual}}, subscribed to {{.expected}}")
	ErrBusClosed               = newEventCode().New("cannot subscribe: event bus is closed")
	ErrPublishOnClosedBus      = newEventCode().New("cannot publish: event bus is closed")
	ErrEventChannelBlocked     = newEventCode().New("event channel is blocked")
)
