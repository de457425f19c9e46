package logger

import (
	"io"
	"log/slog"
)

type Option func(*loggerConfig)

type loggerConfig struct {
	level       slog.Level
	json        bool
	addSource   bool
	writer      io.Writer
	replaceAttr func(groups []string, a slog.Attr) slog.Attr
	wantColor   bool
}

func WithLevel(level slog.Level) Option {
	return func(c *loggerConfig) {
		c.level = level
	}
}

func WithJSON() Option {
	return func(c *loggerConfig) {
		c.json = true
	}
}

func WithSource() Option {
	return func(c *loggerConfig) {
		c.addSource = true
	}
}

func WithWriter(w io.Writer) Option {
	return func(c *loggerConfig) {
		if w == nil {
			w = io.Discard
		}
		c.writer = w
	}
}

func WithColor() Option {
	return func(c *loggerConfig) {
		c.wantColor = true
	}
}

// WithRedactedKeys replaces the values of the given attribute keys. Session
// tokens and passwords pass through the HTTP client logs.
func WithRedactedKeys(keys ...string) Option {
	redacted := make(map[string]bool, len(keys))
	for _, k := range keys {
		redacted[k] = true
	}
	return func(c *loggerConfig) {
		prev := c.replaceAttr
		c.replaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if prev != nil {
				a = prev(groups, a)
			}
			if redacted[a.Key] {
				return slog.String(a.Key, "[REDACTED]")
			}
			return a
		}
	}
}

func levelReplaceAttr(prev func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if prev != nil {
			a = prev(groups, a)
		}
		if a.Key == slog.LevelKey {
			if level, ok := a.Value.Any().(slog.Level); ok {
				return slog.String(slog.LevelKey, getLevelName(level))
			}
		}
		return a
	}
}
