package rod

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/sitegrab"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// domStableWindow is how long the DOM must stay unchanged after a load
// before the page counts as settled.
const domStableWindow = 500 * time.Millisecond

var (
	_ sitegrab.Session = (*Session)(nil)
	_ sitegrab.Element = (*Element)(nil)
)

// Session is a single page in a browser process it owns.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page

	closeOnce sync.Once
	closeErr  error
}

// Navigate loads url and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

// RenderedContent returns the current DOM as HTML.
func (s *Session) RenderedContent(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// FindElement returns the first element matching selector without waiting
// for it to appear.
func (s *Session) FindElement(ctx context.Context, selector string) (sitegrab.Element, bool, error) {
	has, el, err := s.page.Context(ctx).Has(selector)
	if err != nil {
		return nil, false, err
	}
	if !has {
		return nil, false, nil
	}
	return &Element{el: el}, true, nil
}

// Evaluate runs js on the page.
func (s *Session) Evaluate(ctx context.Context, js string) (string, error) {
	res, err := s.page.Context(ctx).Eval(js)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// WaitLoad waits for the load event and for the DOM to settle, which covers
// pages that navigate or re-render after a form submission.
func (s *Session) WaitLoad(ctx context.Context) error {
	page := s.page.Context(ctx)
	if err := page.WaitLoad(); err != nil {
		return err
	}
	return page.WaitDOMStable(domStableWindow, 0)
}

// Close closes the browser and kills its process. Close is safe to call
// multiple times.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.browser.Close()
		s.launcher.Kill()
	})
	return s.closeErr
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	return s.launcher.PID()
}

// Element wraps a rod element.
type Element struct {
	el *rod.Element
}

// Evaluate runs js with the element bound to this.
func (e *Element) Evaluate(ctx context.Context, js string) (string, error) {
	res, err := e.el.Context(ctx).Eval(js)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Input types text into the element.
func (e *Element) Input(ctx context.Context, text string) error {
	return e.el.Context(ctx).Input(text)
}

// Click left-clicks the element once.
func (e *Element) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}
