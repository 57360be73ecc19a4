package mock

import (
	"context"

	"github.com/fwojciec/sitegrab"
)

var (
	_ sitegrab.Launcher = (*Launcher)(nil)
	_ sitegrab.Session  = (*Session)(nil)
	_ sitegrab.Element  = (*Element)(nil)
)

// Launcher is a mock implementation of sitegrab.Launcher.
type Launcher struct {
	LaunchFn func(ctx context.Context, opts sitegrab.SessionOptions) (sitegrab.Session, error)
}

func (l *Launcher) Launch(ctx context.Context, opts sitegrab.SessionOptions) (sitegrab.Session, error) {
	return l.LaunchFn(ctx, opts)
}

// Session is a mock implementation of sitegrab.Session.
type Session struct {
	NavigateFn        func(ctx context.Context, url string) error
	RenderedContentFn func(ctx context.Context) (string, error)
	FindElementFn     func(ctx context.Context, selector string) (sitegrab.Element, bool, error)
	EvaluateFn        func(ctx context.Context, js string) (string, error)
	WaitLoadFn        func(ctx context.Context) error
	CloseFn           func() error
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) RenderedContent(ctx context.Context) (string, error) {
	return s.RenderedContentFn(ctx)
}

func (s *Session) FindElement(ctx context.Context, selector string) (sitegrab.Element, bool, error) {
	return s.FindElementFn(ctx, selector)
}

func (s *Session) Evaluate(ctx context.Context, js string) (string, error) {
	return s.EvaluateFn(ctx, js)
}

func (s *Session) WaitLoad(ctx context.Context) error {
	return s.WaitLoadFn(ctx)
}

func (s *Session) Close() error {
	return s.CloseFn()
}

// Element is a mock implementation of sitegrab.Element.
type Element struct {
	EvaluateFn func(ctx context.Context, js string) (string, error)
	InputFn    func(ctx context.Context, text string) error
	ClickFn    func(ctx context.Context) error
}

func (e *Element) Evaluate(ctx context.Context, js string) (string, error) {
	return e.EvaluateFn(ctx, js)
}

func (e *Element) Input(ctx context.Context, text string) error {
	return e.InputFn(ctx, text)
}

func (e *Element) Click(ctx context.Context) error {
	return e.ClickFn(ctx)
}
