package contracts

import (
	"context"
	"encoding/json"
)

type HTTPEnvelopeError struct {
	Message string `json:"message"`
}

// HTTPEnvelope is the normalized shape every HTTP call resolves or rejects with.
type HTTPEnvelope struct {
	Code   int               `json:"code"`
	Data   json.RawMessage   `json:"data"`
	Error  HTTPEnvelopeError `json:"error"`
	Status bool              `json:"status"`
}

type HTTPRequestOptions struct {
	Headers     map[string]string
	ContentType string
	Query       map[string]string
}

type HTTPRequestOption func(*HTTPRequestOptions)

// HTTPClient performs calls against the back-office API. GET and DELETE send
// payload as query parameters, the other verbs send it as the request body.
type HTTPClient interface {
	Get(ctx context.Context, url string, payload any, opts ...HTTPRequestOption) (*HTTPEnvelope, error)
	Post(ctx context.Context, url string, payload any, opts ...HTTPRequestOption) (*HTTPEnvelope, error)
	Put(ctx context.Context, url string, payload any, opts ...HTTPRequestOption) (*HTTPEnvelope, error)
	Patch(ctx context.Context, url string, payload any, opts ...HTTPRequestOption) (*HTTPEnvelope, error)
	Delete(ctx context.Context, url string, payload any, opts ...HTTPRequestOption) (*HTTPEnvelope, error)
}
