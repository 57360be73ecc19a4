// Package resolve implements the state machine that decides how a page's
// anti-bot challenge is handled before its content is extracted.
package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/sitegrab"
)

// State is a step of the resolution state machine. StateAwaitingChoice is
// initial; StateSolved, StateFailed and StateSkipped are terminal.
type State string

// State constants.
const (
	StateAwaitingChoice   State = "awaiting_choice"
	StateManualSession    State = "manual_session"
	StateAutomaticSession State = "automatic_session"
	StateSolved           State = "solved"
	StateFailed           State = "failed"
	StateSkipped          State = "skipped"
)

// Terminal reports whether s ends processing of the current URL.
func (s State) Terminal() bool {
	return s == StateSolved || s == StateFailed || s == StateSkipped
}

// ManualInstructions are shown to the operator while the manual session is open.
const ManualInstructions = "Solve any challenge in the opened browser window, then press Enter to continue."

// payloadJS reads the challenge payload from the challenge element.
const payloadJS = `() => this.src || this.getAttribute("src") || ""`

// Resolution is the terminal result of one Resolve call.
type Resolution struct {
	State   State
	Outcome sitegrab.ResolutionOutcome

	// HTML is the page content to extract. Set only in StateSolved.
	HTML string

	// Err explains StateFailed and StateSkipped.
	Err error
}

// Extractable reports whether the resolution hands content to extraction.
func (r *Resolution) Extractable() bool {
	return r.State == StateSolved && r.HTML != ""
}

// Router drives one URL from StateAwaitingChoice to a terminal state. It owns
// the browser session for the duration of Resolve and closes it on every
// exit path.
type Router struct {
	Launcher   sitegrab.Launcher
	Classifier sitegrab.ChallengeClassifier
	Solver     sitegrab.CaptchaSolver
	Resumer    sitegrab.Resumer
	Logger     *slog.Logger

	config sitegrab.Config
}

// NewRouter creates a Router using the timeouts, retries and selectors in cfg.
func NewRouter(cfg sitegrab.Config, launcher sitegrab.Launcher, classifier sitegrab.ChallengeClassifier, solver sitegrab.CaptchaSolver, resumer sitegrab.Resumer) *Router {
	return &Router{
		Launcher:   launcher,
		Classifier: classifier,
		Solver:     solver,
		Resumer:    resumer,
		Logger:     slog.New(slog.DiscardHandler),
		config:     cfg,
	}
}

// Resolve runs the path selected by choice for url.
//
// Failures of the page or the solving service are reported through the
// returned Resolution. An error is returned only when no browser session
// could be started or the choice is unknown.
func (r *Router) Resolve(ctx context.Context, url string, choice sitegrab.SolverChoice) (*Resolution, error) {
	switch choice {
	case sitegrab.ChoiceManual:
		return r.resolveManual(ctx, url)
	case sitegrab.ChoiceAutomatic:
		return r.resolveAutomatic(ctx, url)
	}
	return nil, sitegrab.Errorf(sitegrab.EINVALID, "unknown solver choice %q", choice)
}

func (r *Router) resolveManual(ctx context.Context, url string) (res *Resolution, err error) {
	r.transition(url, StateAwaitingChoice, StateManualSession)

	session, err := r.Launcher.Launch(ctx, sitegrab.SessionOptions{Headless: false})
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	defer r.release(session)
	defer r.recoverPanic(url, &res)

	if err := r.navigate(ctx, session, url); err != nil {
		// The operator may still be able to load the page by hand.
		r.Logger.Warn("manual navigation failed", "url", url, "err", err)
	}

	if err := r.Resumer.WaitForOperator(ctx, ManualInstructions); err != nil {
		return r.finish(url, StateManualSession, &Resolution{
			State:   StateSkipped,
			Outcome: sitegrab.OutcomeDeferredToOperator,
			Err:     err,
		}), nil
	}

	if !r.config.ManualExtract {
		return r.finish(url, StateManualSession, &Resolution{
			State:   StateSkipped,
			Outcome: sitegrab.OutcomeDeferredToOperator,
		}), nil
	}

	html, err := r.content(ctx, session)
	if err != nil {
		return r.finish(url, StateManualSession, &Resolution{
			State:   StateSkipped,
			Outcome: sitegrab.OutcomeDeferredToOperator,
			Err:     err,
		}), nil
	}

	return r.finish(url, StateManualSession, &Resolution{
		State:   StateSolved,
		Outcome: sitegrab.OutcomeDeferredToOperator,
		HTML:    html,
	}), nil
}

func (r *Router) resolveAutomatic(ctx context.Context, url string) (res *Resolution, err error) {
	r.transition(url, StateAwaitingChoice, StateAutomaticSession)

	session, err := r.Launcher.Launch(ctx, sitegrab.SessionOptions{Headless: r.config.Headless, Stealth: true})
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	defer r.release(session)
	defer r.recoverPanic(url, &res)

	solved, err := r.solveAutomatic(ctx, session, url)
	if err != nil {
		return r.finish(url, StateAutomaticSession, &Resolution{
			State:   StateFailed,
			Outcome: sitegrab.OutcomeFailed,
			Err:     err,
		}), nil
	}
	return r.finish(url, StateAutomaticSession, solved), nil
}

// solveAutomatic returns a StateSolved resolution or an error mapping to StateFailed.
func (r *Router) solveAutomatic(ctx context.Context, session sitegrab.Session, url string) (*Resolution, error) {
	if err := r.navigate(ctx, session, url); err != nil {
		return nil, err
	}

	html, err := r.content(ctx, session)
	if err != nil {
		return nil, err
	}

	if !r.Classifier.Classify(html) {
		return &Resolution{State: StateSolved, Outcome: sitegrab.OutcomeNotNeeded, HTML: html}, nil
	}
	r.Logger.Info("challenge detected", "url", url)

	challenge, ok, err := session.FindElement(ctx, r.config.Selectors.Challenge)
	if err != nil {
		return nil, fmt.Errorf("finding challenge element: %w", err)
	}
	if !ok {
		return nil, sitegrab.Errorf(sitegrab.EUNSOLVABLE, "no solvable challenge element found")
	}

	payload, err := challenge.Evaluate(ctx, payloadJS)
	if err != nil {
		return nil, fmt.Errorf("reading challenge payload: %w", err)
	}
	if payload == "" {
		return nil, sitegrab.Errorf(sitegrab.EUNSOLVABLE, "challenge element has no payload")
	}

	solution, err := r.solve(ctx, payload)
	if err != nil {
		return nil, err
	}

	if err := r.submit(ctx, session, solution); err != nil {
		return nil, err
	}

	html, err = r.content(ctx, session)
	if err != nil {
		return nil, err
	}
	return &Resolution{State: StateSolved, Outcome: sitegrab.OutcomeSolved, HTML: html}, nil
}

// solve asks the solving service for a solution, bounded by SolveTimeout.
func (r *Router) solve(ctx context.Context, payload string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.SolveTimeout)
	defer cancel()

	solution, err := r.Solver.Solve(ctx, payload)
	if err != nil {
		return "", sitegrab.Errorf(sitegrab.EUNSOLVABLE, "solving service failed: %v", err)
	}
	if solution == "" {
		return "", sitegrab.Errorf(sitegrab.EUNSOLVABLE, "no captcha solution received")
	}
	return solution, nil
}

// submit enters the solution and submits the challenge form.
func (r *Router) submit(ctx context.Context, session sitegrab.Session, solution string) error {
	ctx, cancel := context.WithTimeout(ctx, r.config.NavigationTimeout)
	defer cancel()

	input, ok, err := session.FindElement(ctx, r.config.Selectors.Input)
	if err != nil {
		return fmt.Errorf("finding solution input: %w", err)
	}
	if !ok {
		return sitegrab.Errorf(sitegrab.EUNSOLVABLE, "no input element for the solution")
	}
	if err := input.Input(ctx, solution); err != nil {
		return fmt.Errorf("entering solution: %w", err)
	}

	button, ok, err := session.FindElement(ctx, r.config.Selectors.Submit)
	if err != nil {
		return fmt.Errorf("finding submit control: %w", err)
	}
	if !ok {
		return sitegrab.Errorf(sitegrab.EUNSOLVABLE, "no submit control for the solution")
	}
	if err := button.Click(ctx); err != nil {
		return fmt.Errorf("submitting solution: %w", err)
	}

	if err := session.WaitLoad(ctx); err != nil {
		return fmt.Errorf("waiting for page after submit: %w", err)
	}
	return nil
}

// navigate loads url with a per-attempt timeout and bounded retries.
func (r *Router) navigate(ctx context.Context, session sitegrab.Session, url string) error {
	logf := func(format string, args ...any) {
		r.Logger.Warn(fmt.Sprintf(format, args...), "url", url)
	}
	err := sitegrab.Retry(ctx, r.config.RetryDelays, logf, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, r.config.NavigationTimeout)
		defer cancel()
		return session.Navigate(ctx, url)
	})
	if err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

func (r *Router) content(ctx context.Context, session sitegrab.Session) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.NavigationTimeout)
	defer cancel()

	html, err := session.RenderedContent(ctx)
	if err != nil {
		return "", fmt.Errorf("reading rendered content: %w", err)
	}
	return html, nil
}

// release closes the session. Close errors are logged, not returned.
func (r *Router) release(session sitegrab.Session) {
	if err := session.Close(); err != nil {
		r.Logger.Warn("closing browser session", "err", err)
	}
}

// recoverPanic maps a panic in the browser layer to StateFailed.
// Deferred after release so the session is still closed afterwards.
func (r *Router) recoverPanic(url string, res **Resolution) {
	if p := recover(); p != nil {
		*res = &Resolution{
			State:   StateFailed,
			Outcome: sitegrab.OutcomeFailed,
			Err:     sitegrab.Errorf(sitegrab.EINTERNAL, "browser failure: %v", p),
		}
		r.Logger.Error("browser panic", "url", url, "panic", p)
	}
}

func (r *Router) finish(url string, from State, res *Resolution) *Resolution {
	r.transition(url, from, res.State)
	return res
}

func (r *Router) transition(url string, from, to State) {
	r.Logger.Debug("resolution transition",
		"url", url,
		"from", string(from),
		"to", string(to),
	)
}
