// Package slog provides logging decorators for the sitegrab services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitegrab"
)

// Ensure LoggingSolver implements sitegrab.CaptchaSolver.
var _ sitegrab.CaptchaSolver = (*LoggingSolver)(nil)

// LoggingSolver wraps a CaptchaSolver with logging. Payloads and solutions
// are logged by size only.
type LoggingSolver struct {
	next   sitegrab.CaptchaSolver
	logger *slog.Logger
}

// NewLoggingSolver creates a new LoggingSolver.
func NewLoggingSolver(next sitegrab.CaptchaSolver, logger *slog.Logger) *LoggingSolver {
	return &LoggingSolver{next: next, logger: logger}
}

// Solve delegates to the wrapped solver and logs the operation.
func (s *LoggingSolver) Solve(ctx context.Context, payload string) (solution string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("solve",
			"payload_bytes", len(payload),
			"solved", solution != "",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Solve(ctx, payload)
}
