package httpclient

import (
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

const defaultContentType = "application/json"

func WithHeader(key, value string) contracts.HTTPRequestOption {
	return func(o *contracts.HTTPRequestOptions) {
		o.Headers[key] = value
	}
}

func WithHeaders(headers map[string]string) contracts.HTTPRequestOption {
	return func(o *contracts.HTTPRequestOptions) {
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// WithContentType overrides application/json. It has no effect on multipart
// payloads.
func WithContentType(contentType string) contracts.HTTPRequestOption {
	return func(o *contracts.HTTPRequestOptions) {
		o.ContentType = contentType
	}
}

func WithQuery(key, value string) contracts.HTTPRequestOption {
	return func(o *contracts.HTTPRequestOptions) {
		o.Query[key] = value
	}
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(logger contracts.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTokenSource(tokens contracts.TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

func WithInvalidator(invalidator contracts.SessionInvalidator) Option {
	return func(c *Client) {
		c.invalidator = invalidator
	}
}

func WithNavigator(navigator contracts.Navigator) Option {
	return func(c *Client) {
		c.navigator = navigator
	}
}

func WithRoutes(login, errorScreen string) Option {
	return func(c *Client) {
		if login != "" {
			c.loginRoute = login
		}
		if errorScreen != "" {
			c.errorRoute = errorScreen
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(c *Client) {
		c.backoff = b
	}
}

// WithMaxRetries sets how many times a transport failure is retried after
// the first attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRetryMethods restricts automatic retries to the given verbs. An empty
// list retries every verb.
func WithRetryMethods(methods ...string) Option {
	return func(c *Client) {
		c.retryMethods = make(map[string]bool, len(methods))
		for _, m := range methods {
			c.retryMethods[strings.ToUpper(m)] = true
		}
	}
}

// WithPutMethod selects the HTTP verb sent by Put. The API only exposes
// PATCH for updates, which is the default.
func WithPutMethod(method string) Option {
	return func(c *Client) {
		c.putMethod = strings.ToUpper(method)
	}
}

func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithSleep(fn SleepFunc) Option {
	return func(c *Client) {
		c.sleep = fn
	}
}
