package sitegrab

import "context"

// SessionOptions configures a browser session.
type SessionOptions struct {
	// Headless hides the browser window. Manual resolution needs a visible
	// window so the operator can interact with the page.
	Headless bool

	// Stealth masks common automation fingerprints.
	Stealth bool
}

// Launcher starts browser sessions.
type Launcher interface {
	// Launch starts a browser and opens a single page.
	// The caller owns the returned Session and must Close it.
	Launch(ctx context.Context, opts SessionOptions) (Session, error)
}

// Session is one browser page. A Session is used by one goroutine at a time.
type Session interface {
	// Navigate loads url and waits for the page to finish loading.
	Navigate(ctx context.Context, url string) error

	// RenderedContent returns the current DOM serialized as HTML.
	RenderedContent(ctx context.Context) (string, error)

	// FindElement returns the first element matching the CSS selector.
	// The boolean is false when nothing matches; that is not an error.
	FindElement(ctx context.Context, selector string) (Element, bool, error)

	// Evaluate runs a JavaScript function expression on the page and
	// returns its result as a string.
	Evaluate(ctx context.Context, js string) (string, error)

	// WaitLoad waits for the current navigation to finish.
	WaitLoad(ctx context.Context) error

	// Close releases the page and the browser behind it.
	// Close is safe to call multiple times.
	Close() error
}

// Element is a DOM element on a Session's page.
type Element interface {
	// Evaluate runs a JavaScript function expression with the element bound
	// to this and returns its result as a string.
	Evaluate(ctx context.Context, js string) (string, error)

	// Input focuses the element and types text into it.
	Input(ctx context.Context, text string) error

	// Click clicks the element.
	Click(ctx context.Context) error
}
