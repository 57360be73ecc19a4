package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitegrab"
)

var (
	_ sitegrab.Launcher = (*LoggingLauncher)(nil)
	_ sitegrab.Session  = (*LoggingSession)(nil)
)

// LoggingLauncher wraps a Launcher with logging of session lifecycles.
type LoggingLauncher struct {
	next   sitegrab.Launcher
	logger *slog.Logger
}

// NewLoggingLauncher creates a new LoggingLauncher.
func NewLoggingLauncher(next sitegrab.Launcher, logger *slog.Logger) *LoggingLauncher {
	return &LoggingLauncher{next: next, logger: logger}
}

// Launch logs the launch and wraps the session so page operations are logged.
func (l *LoggingLauncher) Launch(ctx context.Context, opts sitegrab.SessionOptions) (s sitegrab.Session, err error) {
	defer func(begin time.Time) {
		l.logger.Info("launch",
			"headless", opts.Headless,
			"stealth", opts.Stealth,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	s, err = l.next.Launch(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &LoggingSession{next: s, logger: l.logger}, nil
}

// LoggingSession wraps a Session with logging of navigation and content reads.
type LoggingSession struct {
	next   sitegrab.Session
	logger *slog.Logger
}

// Navigate logs the URL being loaded and delegates to the wrapped session.
func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

// RenderedContent logs the content size and delegates to the wrapped session.
func (s *LoggingSession) RenderedContent(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("rendered content",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RenderedContent(ctx)
}

// FindElement logs the lookup and delegates to the wrapped session.
func (s *LoggingSession) FindElement(ctx context.Context, selector string) (el sitegrab.Element, found bool, err error) {
	defer func() {
		s.logger.Info("find element",
			"selector", selector,
			"found", found,
			"err", err,
		)
	}()
	return s.next.FindElement(ctx, selector)
}

// Evaluate delegates to the wrapped session.
func (s *LoggingSession) Evaluate(ctx context.Context, js string) (string, error) {
	return s.next.Evaluate(ctx, js)
}

// WaitLoad delegates to the wrapped session.
func (s *LoggingSession) WaitLoad(ctx context.Context) error {
	return s.next.WaitLoad(ctx)
}

// Close logs the close and delegates to the wrapped session.
func (s *LoggingSession) Close() (err error) {
	defer func() {
		s.logger.Info("close session", "err", err)
	}()
	return s.next.Close()
}
