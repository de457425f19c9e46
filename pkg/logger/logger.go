package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type sLogger struct {
	*slog.Logger
}

func NewLogger(opts ...Option) contracts.Logger {
	cfg := &loggerConfig{
		level:  slog.LevelInfo,
		writer: os.Stderr,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	replaceAttr := levelReplaceAttr(cfg.replaceAttr)

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.writer, &slog.HandlerOptions{
			Level:       cfg.level,
			AddSource:   cfg.addSource,
			ReplaceAttr: replaceAttr,
		})
	} else {
		handler = newTextHandler(cfg.writer, cfg.wantColor && isTerminal(cfg.writer), replaceAttr, cfg.level)
	}

	return &sLogger{Logger: slog.New(handler)}
}

func (l *sLogger) Trace(msg string, args ...any) { l.log(levelTrace, msg, args) }

func (l *sLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }

func (l *sLogger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args) }

func (l *sLogger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args) }

func (l *sLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *sLogger) Critical(msg string, args ...any) { l.log(levelCritical, msg, args) }

func (l *sLogger) With(args ...any) contracts.Logger {
	return &sLogger{Logger: l.Logger.With(args...)}
}

func (l *sLogger) log(level slog.Level, msg string, args []any) {
	l.LogAttrs(context.Background(), level, msg, convertArgs(args)...)
}

func convertArgs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			attrs = append(attrs, slog.Any("MISSING_KEY", args[i]))
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("NON_STRING_KEY_%T", args[i])
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	return attrs
}
