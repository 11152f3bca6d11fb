package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/addressbook/internal/metrics"
	"github.com/mmynk/addressbook/internal/models"
	"github.com/mmynk/addressbook/internal/service"
)

// Logging wraps a command handler so every call is logged and counted.
// Operator mistakes are logged at warn level, anything else at error.
// m may be nil, in which case only logging is done.
func Logging(command string, m *metrics.Metrics, next service.Handler) service.Handler {
	return func(ctx context.Context, args []string) (string, error) {
		start := time.Now()

		msg, err := next(ctx, args)

		elapsed := time.Since(start)
		outcome := Outcome(err)
		if err != nil {
			var userErr *models.UserError
			if errors.As(err, &userErr) {
				slog.Warn("Command failed",
					"command", command,
					"outcome", outcome,
					"error", userErr.Message,
					"args", len(args),
					"duration_ms", elapsed.Milliseconds(),
				)
			} else {
				slog.Error("Command error",
					"command", command,
					"error", err,
					"args", len(args),
					"duration_ms", elapsed.Milliseconds(),
				)
			}
		} else {
			slog.Debug("Command ok",
				"command", command,
				"args", len(args),
				"duration_ms", elapsed.Milliseconds(),
			)
		}

		if m != nil {
			m.CommandsTotal.WithLabelValues(command, outcome).Inc()
			m.CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
		}
		return msg, err
	}
}

// Outcome maps a handler error to its metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, models.ErrInvalidFormat):
		return metrics.OutcomeInvalidFormat
	case errors.Is(err, models.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, models.ErrInsufficientArguments):
		return metrics.OutcomeInsufficientArguments
	default:
		return metrics.OutcomeError
	}
}

// WrapAll applies Logging to every handler in the table.
func WrapAll(handlers map[string]service.Handler, m *metrics.Metrics) map[string]service.Handler {
	wrapped := make(map[string]service.Handler, len(handlers))
	for name, h := range handlers {
		wrapped[name] = Logging(name, m, h)
	}
	return wrapped
}
