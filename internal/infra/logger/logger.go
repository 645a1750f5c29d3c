// Package logger configures the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Options configures Init.
type Options struct {
	// Development selects text output at debug level instead of JSON at info level.
	Development bool
	// Level overrides the environment default when set.
	Level slog.Leveler
	// SentryDSN, when non-empty, also forwards error records to Sentry.
	SentryDSN string
}

// Init builds the default logger.
func Init(w io.Writer, opts Options) (*slog.Logger, error) {
	handlers := []slog.Handler{baseHandler(w, opts)}

	if opts.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			TracesSampleRate: 1.0,
		}); err != nil {
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
		handlers = append(handlers, slogsentry.Option{
			Level: slog.LevelError,
		}.NewSentryHandler())
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log, nil
}

// Flush waits for buffered Sentry events to be delivered.
func Flush() {
	sentry.Flush(2 * time.Second)
}

func baseHandler(w io.Writer, opts Options) slog.Handler {
	level := opts.Level
	if opts.Development {
		if level == nil {
			level = slog.LevelDebug
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}
