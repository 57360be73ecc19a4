// Package rod implements sitegrab browser sessions with Chrome automation.
package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/sitegrab"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Ensure Launcher implements sitegrab.Launcher at compile time.
var _ sitegrab.Launcher = (*Launcher)(nil)

// Launcher starts a dedicated Chrome process for every session, so closing a
// session always tears the whole browser down.
type Launcher struct {
	bin string
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithBrowserBin sets the Chrome/Chromium executable.
// By default rod finds an installed browser or downloads one.
func WithBrowserBin(path string) LauncherOption {
	return func(l *Launcher) {
		l.bin = path
	}
}

// NewLauncher creates a new Launcher.
func NewLauncher(opts ...LauncherOption) *Launcher {
	l := &Launcher{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts a browser with stability flags and opens one page.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func (l *Launcher) Launch(ctx context.Context, opts sitegrab.SessionOptions) (sitegrab.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lnchr := launcher.New().
		Context(ctx).
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(opts.Headless)
	if l.bin != "" {
		lnchr = lnchr.Bin(l.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	var page *rod.Page
	if opts.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		_ = browser.Close()
		lnchr.Kill()
		return nil, fmt.Errorf("opening page: %w", err)
	}

	return &Session{browser: browser, launcher: lnchr, page: page}, nil
}
