package httpclient

import (
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/errors"
)

var newHTTPClientCode = errors.WithPrefix("HTTP_CLIENT")

var (
	ErrServer         = newHTTPClientCode().New("server error {{.code}} on {{.method}} {{.url}}")
	ErrBusiness       = newHTTPClientCode().New("request rejected with code {{.code}} on {{.method}} {{.url}}")
	ErrUnauthorized   = newHTTPClientCode().New("unauthorized request on {{.method}} {{.url}}")
	ErrTransport      = newHTTPClientCode().New("no response for {{.method}} {{.url}} after {{.attempts}} attempts")
	ErrEncodePayload  = newHTTPClientCode().New("cannot encode {{.method}} payload: {{.reason}}")
	ErrBuildRequest   = newHTTPClientCode().New("cannot build request for {{.url}}")
	ErrInvalidBaseURL = newHTTPClientCode().New("invalid API base URL {{.url}}")

	errNotAnObject = newHTTPClientCode().New("query payload must be a JSON object")
)

// ResponseError is the rejection produced by the client: it carries the
// normalized envelope so callers can read the server message, and unwraps to
// the classification sentinels (ErrServer, ErrBusiness, ErrUnauthorized,
// ErrTransport).
type ResponseError struct {
	Envelope *contracts.HTTPEnvelope
	kinds    []error
}

func NewResponseError(env *contracts.HTTPEnvelope, kinds ...error) *ResponseError {
	return &ResponseError{Envelope: env, kinds: kinds}
}

func (e *ResponseError) Error() string {
	if len(e.kinds) == 0 {
		return e.UserMessage()
	}
	return e.kinds[0].Error() + ": " + e.UserMessage()
}

// UserMessage is the server supplied message, suitable for a view.
func (e *ResponseError) UserMessage() string {
	if e.Envelope == nil {
		return undefinedResponseMessage
	}
	return e.Envelope.Error.Message
}

func (e *ResponseError) Unwrap() []error {
	return e.kinds
}
