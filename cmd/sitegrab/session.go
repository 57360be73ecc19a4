package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/sitegrab"
	"github.com/fwojciec/sitegrab/resolve"
	"github.com/google/uuid"
)

// Session is the interactive loop: one URL at a time until the operator
// types exit or input ends. No per-URL failure ends the loop.
type Session struct {
	Prompter  *Prompter
	Stdout    io.Writer
	Records   sitegrab.RecordService
	Robots    sitegrab.RobotsService
	Router    *resolve.Router
	Extractor sitegrab.ContentExtractor
	Logger    *slog.Logger

	// Interrupt derives the context for processing one URL. Cancelling it
	// abandons that URL and the loop continues.
	Interrupt func(ctx context.Context) (context.Context, context.CancelFunc)

	// NewRunID tags the log lines of one URL run.
	NewRunID func() string
}

// Run prompts for URLs until exit. It returns nil on exit or end of input.
func (s *Session) Run(ctx context.Context) error {
	for {
		input, err := s.Prompter.Ask(ctx, "Enter the URL to collect data from (or type 'exit' to finish): ")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if strings.EqualFold(input, "exit") {
			break
		}

		if err := s.Process(ctx, input); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		fmt.Fprintln(s.Stdout, "Enter another URL or type 'exit' to finish.")
	}

	fmt.Fprintln(s.Stdout, "Scraping session completed.")
	return nil
}

// Process runs one URL through validation, the robots advisory, the solver
// choice, resolution, extraction and storage. Outcomes are reported to the
// operator; an error is returned only when input ended or ctx was cancelled.
func (s *Session) Process(ctx context.Context, rawURL string) error {
	if err := sitegrab.ValidateURL(rawURL); err != nil {
		fmt.Fprintf(s.Stdout, "Invalid URL: %s\n", sitegrab.ErrorMessage(err))
		return nil
	}

	logger := s.logger().With("run", s.runID(), "url", rawURL)
	urlCtx, cancel := s.interrupt(ctx)
	defer cancel()

	s.showRobots(urlCtx, rawURL)

	choice, err := s.askChoice(urlCtx)
	if err != nil {
		return s.abandon(ctx, logger, err)
	}

	switch choice {
	case sitegrab.ChoiceManual:
		fmt.Fprintln(s.Stdout, "You chose to solve challenges manually. Opening the page in a browser window...")
	case sitegrab.ChoiceAutomatic:
		fmt.Fprintln(s.Stdout, "You chose the automated solver.")
	}

	res, err := s.Router.Resolve(urlCtx, rawURL, choice)
	if err != nil {
		logger.Error("resolution failed", "err", err)
		fmt.Fprintf(s.Stdout, "Error: %s. Skipping this website.\n", describe(err))
		return ctx.Err()
	}
	logger.Info("resolved", "state", string(res.State), "outcome", string(res.Outcome))

	if urlCtx.Err() != nil {
		return s.abandon(ctx, logger, urlCtx.Err())
	}

	switch res.State {
	case resolve.StateSolved:
		s.store(urlCtx, logger, rawURL, res)
	case resolve.StateSkipped:
		if errors.Is(res.Err, io.EOF) {
			return io.EOF
		}
		fmt.Fprintln(s.Stdout, "Page left to the operator; nothing was stored.")
	case resolve.StateFailed:
		fmt.Fprintf(s.Stdout, "Unable to resolve the challenge: %s. Skipping this website.\n", describe(res.Err))
	}
	return ctx.Err()
}

func (s *Session) showRobots(ctx context.Context, rawURL string) {
	adv, err := s.Robots.FetchRobots(ctx, rawURL)
	if err != nil {
		fmt.Fprintf(s.Stdout, "No robots.txt file found or unable to fetch it (%s).\n", sitegrab.ErrorMessage(err))
		return
	}
	fmt.Fprintf(s.Stdout, "Robots.txt content (%s):\n%s\n", adv.RobotsURL, adv.Content)
	if !adv.Allowed {
		fmt.Fprintln(s.Stdout, "Note: robots.txt disallows this path. It is shown for information only.")
	}
}

func (s *Session) askChoice(ctx context.Context) (sitegrab.SolverChoice, error) {
	for {
		input, err := s.Prompter.Ask(ctx, "Do you want to solve challenges manually (enter 'manual') or use the automated solver (enter 'auto')? ")
		if err != nil {
			return "", err
		}
		choice, err := sitegrab.ParseSolverChoice(input)
		if err == nil {
			return choice, nil
		}
		fmt.Fprintln(s.Stdout, "Invalid choice. Please enter 'manual' or 'auto'.")
	}
}

func (s *Session) store(ctx context.Context, logger *slog.Logger, rawURL string, res *resolve.Resolution) {
	switch res.Outcome {
	case sitegrab.OutcomeNotNeeded:
		fmt.Fprintln(s.Stdout, "No challenges detected.")
	case sitegrab.OutcomeSolved:
		fmt.Fprintln(s.Stdout, "Challenge solved.")
	case sitegrab.OutcomeDeferredToOperator:
		fmt.Fprintln(s.Stdout, "Capturing the page left open by the operator.")
	}

	if !res.Extractable() {
		fmt.Fprintln(s.Stdout, "No valid data extracted from the web page.")
		return
	}

	ext, err := s.Extractor.Extract(res.HTML)
	if err != nil {
		logger.Error("extraction failed", "err", err)
		fmt.Fprintf(s.Stdout, "Extraction failed: %s\n", describe(err))
		return
	}

	rec := ext.Normalize().Record(rawURL)
	fmt.Fprintf(s.Stdout, "Title: %s\n", rec.Title)
	fmt.Fprintf(s.Stdout, "Headings: %d found\n", len(rec.Headings))
	fmt.Fprintf(s.Stdout, "Paragraphs: %d found\n", len(rec.Paragraphs))
	fmt.Fprintf(s.Stdout, "Lists: %d found\n", len(rec.Lists))
	fmt.Fprintf(s.Stdout, "Code snippets: %d found\n", len(rec.CodeSnippets))

	if err := s.Records.CreateRecord(ctx, rec); err != nil {
		if sitegrab.ErrorCode(err) == sitegrab.ENOCONTENT {
			fmt.Fprintln(s.Stdout, "No valid data extracted from the web page.")
			return
		}
		logger.Error("storing record failed", "err", err)
		fmt.Fprintf(s.Stdout, "Error storing data: %s\n", describe(err))
		return
	}
	fmt.Fprintf(s.Stdout, "Web page data stored as record %d.\n", rec.ID)

	s.noteDuplicate(ctx, logger, rec)
}

// noteDuplicate tells the operator when identical content was stored
// before. It never prevents the write.
func (s *Session) noteDuplicate(ctx context.Context, logger *slog.Logger, rec *sitegrab.PageRecord) {
	if rec.ContentHash == "" {
		return
	}
	hash := rec.ContentHash
	recs, err := s.Records.FindRecords(ctx, sitegrab.RecordFilter{ContentHash: &hash, Limit: 1})
	if err != nil {
		logger.Warn("duplicate lookup failed", "err", err)
		return
	}
	if len(recs) > 0 && recs[0].ID != rec.ID {
		fmt.Fprintf(s.Stdout, "Note: identical content was already stored as record %d (%s).\n", recs[0].ID, recs[0].URL)
	}
}

// abandon reports a URL given up before resolution. Input exhaustion and
// cancellation of the session itself are passed on.
func (s *Session) abandon(ctx context.Context, logger *slog.Logger, err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	logger.Warn("url abandoned", "err", err)
	fmt.Fprintln(s.Stdout, "Cancelled. Skipping this website.")
	return nil
}

func (s *Session) interrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Interrupt != nil {
		return s.Interrupt(ctx)
	}
	return context.WithCancel(ctx)
}

func (s *Session) runID() string {
	if s.NewRunID != nil {
		return s.NewRunID()
	}
	return uuid.NewString()
}

func (s *Session) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// describe returns the message of application errors and the full text of
// anything else.
func describe(err error) string {
	if sitegrab.ErrorCode(err) == sitegrab.EINTERNAL {
		return err.Error()
	}
	return sitegrab.ErrorMessage(err)
}
