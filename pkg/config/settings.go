package config

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type Settings struct {
	API      APISettings
	HTTP     HTTPSettings
	Session  SessionSettings
	Database DatabaseSettings
	Metrics  MetricsSettings
}

type APISettings struct {
	BaseURL string
	Timeout time.Duration
}

type HTTPSettings struct {
	PutMethod    string
	MaxRetries   int
	RetryBase    time.Duration
	RetryBackoff string
	RetryMax     time.Duration
	RetryMethods []string
	RateLimit    float64
	RateBurst    int
	LoginRoute   string
	ErrorRoute   string
}

type SessionSettings struct {
	Driver       string
	FilePath     string
	PollInterval time.Duration
	Redis        RedisSettings
}

type RedisSettings struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Stream   string
}

type DatabaseSettings struct {
	Driver  string
	DSN     string
	MaxOpen int
	MaxIdle int
}

// MetricsSettings controls where the collected metrics go. Both outputs are
// off when empty.
type MetricsSettings struct {
	Addr     string
	Textfile string
}

var (
	sessionDrivers  = []string{"memory", "file", "redis", "sql"}
	backoffPolicies = []string{"exponential", "fixed"}
)

// LoadSettings reads the typed settings and validates them. The API base URL
// is the only required value.
func LoadSettings(cfg contracts.Config) (*Settings, error) {
	s := &Settings{
		API: APISettings{
			BaseURL: strings.TrimRight(cfg.GetString("api.base_url"), "/"),
			Timeout: cfg.GetDuration("api.timeout", 30*time.Second),
		},
		HTTP: HTTPSettings{
			PutMethod:    strings.ToUpper(cfg.GetString("http.put_method", http.MethodPatch)),
			MaxRetries:   cfg.GetInt("http.retry.max", 3),
			RetryBase:    cfg.GetDuration("http.retry.base", 100*time.Millisecond),
			RetryBackoff: strings.ToLower(cfg.GetString("http.retry.backoff", "exponential")),
			RetryMax:     cfg.GetDuration("http.retry.max_delay", 10*time.Second),
			RetryMethods: upper(cfg.GetStringSlice("http.retry.methods")),
			RateLimit:    cfg.GetFloat64("http.rate_limit.rps", 0),
			RateBurst:    cfg.GetInt("http.rate_limit.burst", 1),
			LoginRoute:   cfg.GetString("http.routes.login", "/login"),
			ErrorRoute:   cfg.GetString("http.routes.error", "/error"),
		},
		Session: SessionSettings{
			Driver:       strings.ToLower(cfg.GetString("session.driver", "file")),
			FilePath:     cfg.GetString("session.file", defaultSessionFile()),
			PollInterval: cfg.GetDuration("session.poll_interval", time.Second),
			Redis: RedisSettings{
				Addr:     cfg.GetString("session.redis.addr", "localhost:6379"),
				Password: cfg.GetString("session.redis.password"),
				DB:       cfg.GetInt("session.redis.db", 0),
				Prefix:   cfg.GetString("session.redis.prefix", "underc0de:session:"),
				Stream:   cfg.GetString("session.redis.stream", "underc0de:session:changes"),
			},
		},
		Database: DatabaseSettings{
			Driver:  cfg.GetString("database.driver", "sqlite3"),
			DSN:     cfg.GetString("database.dsn", "file:underc0de-session.db?cache=shared"),
			MaxOpen: cfg.GetInt("database.max_open", 4),
			MaxIdle: cfg.GetInt("database.max_idle", 2),
		},
		Metrics: MetricsSettings{
			Addr:     cfg.GetString("metrics.addr"),
			Textfile: cfg.GetString("metrics.textfile"),
		},
	}

	return s, s.validate()
}

func (s *Settings) validate() error {
	if s.API.BaseURL == "" {
		return ErrMissingSetting.WithDetail("key", "api.base_url")
	}
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidSetting.
			WithDetail("key", "api.base_url").
			WithDetail("reason", "must be an absolute http(s) URL").
			WithCause(err)
	}
	if s.HTTP.PutMethod != http.MethodPut && s.HTTP.PutMethod != http.MethodPatch {
		return ErrInvalidSetting.WithDetail("key", "http.put_method").WithDetail("reason", "must be PUT or PATCH")
	}
	if s.HTTP.MaxRetries < 0 {
		return ErrInvalidSetting.WithDetail("key", "http.retry.max").WithDetail("reason", "must not be negative")
	}
	if s.HTTP.RetryBase <= 0 || s.HTTP.RetryMax < s.HTTP.RetryBase {
		return ErrInvalidSetting.WithDetail("key", "http.retry.base").WithDetail("reason", "base must be positive and not above max_delay")
	}
	if !slices.Contains(backoffPolicies, s.HTTP.RetryBackoff) {
		return ErrInvalidSetting.
			WithDetail("key", "http.retry.backoff").
			WithDetail("reason", "expected one of "+strings.Join(backoffPolicies, ", "))
	}
	if !slices.Contains(sessionDrivers, s.Session.Driver) {
		return ErrInvalidSetting.
			WithDetail("key", "session.driver").
			WithDetail("reason", "expected one of "+strings.Join(sessionDrivers, ", "))
	}
	return nil
}

func upper(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToUpper(v)
	}
	return values
}
