package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/errors"
)

const (
	maxBodySize = 8 << 20

	ReasonUnauthorized = "Sesión expirada: inicia sesión nuevamente."
	ReasonServerError  = "El servidor no pudo procesar la solicitud."
)

// Client is the only point of contact with the back-office API. Every call
// resolves or rejects with a normalized envelope.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  contracts.Logger

	tokens      contracts.TokenSource
	invalidator contracts.SessionInvalidator
	navigator   contracts.Navigator
	loginRoute  string
	errorRoute  string

	backoff      Backoff
	maxRetries   int
	retryMethods map[string]bool
	putMethod    string
	limiter      *rate.Limiter
	sleep        SleepFunc
	metrics      *Metrics
}

var _ contracts.HTTPClient = (*Client)(nil)

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidBaseURL.WithDetail("url", baseURL).WithCause(err)
	}

	c := &Client{
		baseURL:    u,
		http:       &http.Client{Timeout: 30 * time.Second},
		loginRoute: "/login",
		errorRoute: "/error",
		backoff:    ExponentialBackoff{Base: 100 * time.Millisecond, MaxDelay: 10 * time.Second},
		maxRetries: 3,
		putMethod:  http.MethodPatch,
		sleep:      sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Get(ctx context.Context, url string, payload any, opts ...contracts.HTTPRequestOption) (*contracts.HTTPEnvelope, error) {
	return c.do(ctx, http.MethodGet, url, payload, opts)
}

func (c *Client) Post(ctx context.Context, url string, payload any, opts ...contracts.HTTPRequestOption) (*contracts.HTTPEnvelope, error) {
	return c.do(ctx, http.MethodPost, url, payload, opts)
}

func (c *Client) Put(ctx context.Context, url string, payload any, opts ...contracts.HTTPRequestOption) (*contracts.HTTPEnvelope, error) {
	return c.do(ctx, c.putMethod, url, payload, opts)
}

func (c *Client) Patch(ctx context.Context, url string, payload any, opts ...contracts.HTTPRequestOption) (*contracts.HTTPEnvelope, error) {
	return c.do(ctx, http.MethodPatch, url, payload, opts)
}

func (c *Client) Delete(ctx context.Context, url string, payload any, opts ...contracts.HTTPRequestOption) (*contracts.HTTPEnvelope, error) {
	return c.do(ctx, http.MethodDelete, url, payload, opts)
}

type call struct {
	id          string
	method      string
	url         string
	body        []byte
	headers     map[string]string
	contentType string
	started     time.Time
	logger      contracts.Logger
}

func (c *Client) do(ctx context.Context, method, path string, payload any, opts []contracts.HTTPRequestOption) (*contracts.HTTPEnvelope, error) {
	call, err := c.prepare(method, path, payload, opts)
	if err != nil {
		c.metrics.observe(method, outcomeInvalid, time.Now())
		return nil, err
	}

	resp, body, attempts, err := c.send(ctx, call)
	if err != nil {
		c.metrics.observe(method, outcomeTransport, call.started)
		call.logger.Warn("request failed without response", "attempts", attempts, "error", err)
		return nil, NewResponseError(undefinedResponse(), ErrTransport.
			WithDetail("method", method).
			WithDetail("url", call.url).
			WithDetail("attempts", attempts).
			WithCause(err))
	}

	return c.classify(ctx, call, resp.StatusCode, body)
}

func (c *Client) prepare(method, path string, payload any, opts []contracts.HTTPRequestOption) (*call, error) {
	options := contracts.HTTPRequestOptions{
		Headers:     map[string]string{},
		ContentType: defaultContentType,
		Query:       map[string]string{},
	}
	for _, opt := range opts {
		opt(&options)
	}

	target, err := c.resolve(path)
	if err != nil {
		return nil, ErrBuildRequest.WithDetail("url", path).WithCause(err)
	}

	query := target.Query()
	for k, v := range options.Query {
		query.Set(k, v)
	}

	cl := &call{
		id:          uuid.NewString(),
		method:      method,
		headers:     options.Headers,
		contentType: options.ContentType,
		started:     time.Now(),
	}

	if method == http.MethodGet || method == http.MethodDelete {
		params, err := encodeQuery(payload)
		if err != nil {
			return nil, encodeError(method, err)
		}
		for k, vs := range params {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
	} else {
		body, forced, err := encodeBody(payload)
		if err != nil {
			return nil, encodeError(method, err)
		}
		cl.body = body
		if forced != "" {
			cl.contentType = forced
		}
	}

	target.RawQuery = query.Encode()
	cl.url = target.String()
	cl.logger = c.log().With("request_id", cl.id, "method", method, "url", cl.url)
	return cl, nil
}

func encodeError(method string, err error) error {
	return ErrEncodePayload.WithDetail("method", method).WithDetail("reason", errors.Message(err)).WithCause(err)
}

func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	if ref.IsAbs() {
		return ref, nil
	}

	target := *c.baseURL
	target.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	target.RawPath = ""
	target.RawQuery = ref.RawQuery
	return &target, nil
}

// send performs the attempts. Only failures without a response are retried;
// a response of any status ends the loop.
func (c *Client) send(ctx context.Context, cl *call) (*http.Response, []byte, int, error) {
	attempt := 0
	for {
		attempt++
		resp, body, err := c.attempt(ctx, cl)
		if err == nil {
			return resp, body, attempt, nil
		}
		if ctx.Err() != nil || !c.retryable(cl.method) || attempt > c.maxRetries {
			return nil, nil, attempt, err
		}

		delay := c.backoff.Delay(attempt - 1)
		cl.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "error", err)
		c.metrics.retried(cl.method)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, nil, attempt, err
		}
	}
}

func (c *Client) attempt(ctx context.Context, cl *call) (*http.Response, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
	}

	var reader io.Reader
	if cl.body != nil {
		reader = bytes.NewReader(cl.body)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, cl.url, reader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range cl.headers {
		req.Header.Set(k, v)
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	req.Header.Set("Authorization", "Bearer "+c.token(ctx))
	req.Header.Set("X-Request-ID", cl.id)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

func (c *Client) retryable(method string) bool {
	if len(c.retryMethods) == 0 {
		return true
	}
	return c.retryMethods[method]
}

// token never fails the request: a missing credential is sent as an empty
// bearer value.
func (c *Client) token(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log().Warn("cannot read session token", "error", err)
		return ""
	}
	return token
}

func (c *Client) classify(ctx context.Context, cl *call, status int, body []byte) (*contracts.HTTPEnvelope, error) {
	var env *contracts.HTTPEnvelope
	if status >= http.StatusBadRequest {
		env = failureEnvelope(status, body)
	} else {
		env = normalize(status, body)
	}

	code := bodyCode(body)
	cl.logger.Debug("response received", "status", status, "code", code, "duration", time.Since(cl.started))

	var kinds []error
	outcome := outcomeSuccess
	switch {
	case status >= http.StatusInternalServerError || code >= http.StatusInternalServerError:
		outcome = outcomeServer
		kinds = append(kinds, ErrServer.
			WithDetail("code", max(status, code)).
			WithDetail("method", cl.method).
			WithDetail("url", cl.url))
		cl.logger.Error("server error", "status", status, "code", code, "message", env.Error.Message)
		c.navigate(ctx, c.errorRoute, ReasonServerError)
	case status >= http.StatusBadRequest || code >= http.StatusBadRequest:
		outcome = outcomeBusiness
		kinds = append(kinds, ErrBusiness.
			WithDetail("code", max(status, code)).
			WithDetail("method", cl.method).
			WithDetail("url", cl.url))
	}

	if status == http.StatusUnauthorized {
		outcome = outcomeUnauthorized
		kinds = append([]error{ErrUnauthorized.WithDetail("method", cl.method).WithDetail("url", cl.url)}, kinds...)
		c.expireSession(ctx, cl)
	}

	c.metrics.observe(cl.method, outcome, cl.started)
	if len(kinds) > 0 {
		return env, NewResponseError(env, kinds...)
	}
	return env, nil
}

func (c *Client) expireSession(ctx context.Context, cl *call) {
	if c.invalidator != nil {
		if err := c.invalidator.Invalidate(ctx); err != nil {
			cl.logger.Error("cannot clear session", "error", err)
		}
	}
	c.navigate(ctx, c.loginRoute, ReasonUnauthorized)
}

func (c *Client) navigate(ctx context.Context, path, reason string) {
	if c.navigator == nil {
		return
	}
	if err := c.navigator.Navigate(ctx, path, reason); err != nil {
		c.log().Error("navigation failed", "path", path, "error", err)
	}
}

func (c *Client) log() contracts.Logger {
	if c.logger == nil {
		return nopLogger{}
	}
	return c.logger
}

type nopLogger struct{}

func (nopLogger) Trace(string, ...any)           {}
func (nopLogger) Debug(string, ...any)           {}
func (nopLogger) Info(string, ...any)            {}
func (nopLogger) Warn(string, ...any)            {}
func (nopLogger) Error(string, ...any)           {}
func (nopLogger) Critical(string, ...any)        {}
func (n nopLogger) With(...any) contracts.Logger { return n }
