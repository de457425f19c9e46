package httpclient

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/shuldan/underc0de-admin/pkg/config"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct {
	opts []Option
}

// NewModule registers the API client under "httpClient". Settings, logger,
// session and navigator are required; metrics are used when registered.
func NewModule(opts ...Option) contracts.AppModule {
	return &module{opts: opts}
}

func (m *module) Name() string {
	return contracts.HTTPClientModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(contracts.HTTPClientModuleName, m.build)
}

func (m *module) build(c contracts.DIResolver) (any, error) {
	settings, err := registry.Resolve[*config.Settings](c, contracts.SettingsModuleName)
	if err != nil {
		return nil, err
	}
	logger, err := registry.Resolve[contracts.Logger](c, contracts.LoggerModuleName)
	if err != nil {
		return nil, err
	}
	session, err := registry.Resolve[sessionState](c, contracts.SessionModuleName)
	if err != nil {
		return nil, err
	}
	navigator, err := registry.Resolve[contracts.Navigator](c, contracts.NavigatorModuleName)
	if err != nil {
		return nil, err
	}

	opts := append(FromSettings(settings),
		WithLogger(logger.With("module", contracts.HTTPClientModuleName)),
		WithTokenSource(session),
		WithInvalidator(session),
		WithNavigator(navigator),
	)

	if c.Has(contracts.MetricsModuleName) {
		reg, err := registry.Resolve[prometheus.Registerer](c, contracts.MetricsModuleName)
		if err != nil {
			return nil, err
		}
		metrics, err := NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMetrics(metrics))
	}

	return New(settings.API.BaseURL, append(opts, m.opts...)...)
}

type sessionState interface {
	contracts.TokenSource
	contracts.SessionInvalidator
}

// FromSettings maps the api.* and http.* settings to client options.
func FromSettings(s *config.Settings) []Option {
	opts := []Option{
		WithHTTPClient(&http.Client{Timeout: s.API.Timeout}),
		WithPutMethod(s.HTTP.PutMethod),
		WithMaxRetries(s.HTTP.MaxRetries),
		WithBackoff(backoffFor(s.HTTP)),
		WithRetryMethods(s.HTTP.RetryMethods...),
		WithRoutes(s.HTTP.LoginRoute, s.HTTP.ErrorRoute),
	}
	if s.HTTP.RateLimit > 0 {
		opts = append(opts, WithRateLimiter(rate.NewLimiter(rate.Limit(s.HTTP.RateLimit), max(s.HTTP.RateBurst, 1))))
	}
	return opts
}

// backoffFor waits http.retry.base between attempts under the fixed policy,
// otherwise doubles it up to http.retry.max_delay.
func backoffFor(s config.HTTPSettings) Backoff {
	if s.RetryBackoff == "fixed" {
		return FixedBackoff{Duration: s.RetryBase}
	}
	return ExponentialBackoff{Base: s.RetryBase, MaxDelay: s.RetryMax}
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}
