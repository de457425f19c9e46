package gateway

import (
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/errors"
)

var newGatewayCode = errors.WithPrefix("GATEWAY")

var (
	ErrRejected         = newGatewayCode().New("request rejected by the API")
	ErrMalformedPayload = newGatewayCode().New("unexpected payload: {{.reason}} at {{.path}}")
)

// ResponseError is returned by gateways when the envelope status is false.
// Its message is exactly the one the server sent.
type ResponseError struct {
	Envelope *contracts.HTTPEnvelope
	message  string
	cause    error
}

func (e *ResponseError) Error() string {
	return e.message
}

func (e *ResponseError) UserMessage() string {
	return e.message
}

// Unwrap exposes ErrRejected and, for rejections produced by the HTTP client,
// its classification (server, business, unauthorized, transport).
func (e *ResponseError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrRejected}
	}
	return []error{ErrRejected, e.cause}
}

// Reject builds the error a gateway returns for a business rule failure on an
// otherwise successful envelope.
func Reject(message string) *ResponseError {
	return &ResponseError{message: message}
}

func malformed(path, reason string) error {
	return ErrMalformedPayload.WithDetail("path", path).WithDetail("reason", reason)
}
