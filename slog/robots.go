package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitegrab"
)

// Ensure LoggingRobots implements sitegrab.RobotsService.
var _ sitegrab.RobotsService = (*LoggingRobots)(nil)

// LoggingRobots wraps a RobotsService with logging.
type LoggingRobots struct {
	next   sitegrab.RobotsService
	logger *slog.Logger
}

// NewLoggingRobots creates a new LoggingRobots.
func NewLoggingRobots(next sitegrab.RobotsService, logger *slog.Logger) *LoggingRobots {
	return &LoggingRobots{next: next, logger: logger}
}

// FetchRobots delegates to the wrapped service and logs the operation.
func (s *LoggingRobots) FetchRobots(ctx context.Context, rawURL string) (adv *sitegrab.RobotsAdvisory, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", rawURL}
		if adv != nil {
			attrs = append(attrs, "bytes", len(adv.Content), "allowed", adv.Allowed)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("robots", attrs...)
	}(time.Now())
	return s.next.FetchRobots(ctx, rawURL)
}
