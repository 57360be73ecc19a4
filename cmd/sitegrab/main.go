// Command sitegrab collects the title, headings, paragraphs, lists and code
// of one operator-supplied web page at a time into a SQLite database.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitegrab"
	"github.com/fwojciec/sitegrab/goquery"
	sghttp "github.com/fwojciec/sitegrab/http"
	"github.com/fwojciec/sitegrab/resolve"
	"github.com/fwojciec/sitegrab/rod"
	sgslog "github.com/fwojciec/sitegrab/slog"
	"github.com/fwojciec/sitegrab/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the record store.
	DB *sqlite.DB

	// Launcher starts browser sessions. Defaults to a rod launcher; set
	// before calling Run() to substitute one.
	Launcher sitegrab.Launcher

	// Solver overrides the HTTP solving service client.
	Solver sitegrab.CaptchaSolver

	// Robots overrides the HTTP robots.txt client.
	Robots sitegrab.RobotsService

	// Interrupt derives the per-URL context. Defaults to cancellation on
	// SIGINT.
	Interrupt func(ctx context.Context) (context.Context, context.CancelFunc)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Interrupt: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run parses flags, wires the services and runs the interactive session.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitegrab"),
		kong.Description("Collect structured content from web pages, resolving anti-bot challenges manually or automatically."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %s", sitegrab.ErrorMessage(err))
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(cfg.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITEGRAB_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
	}
	defer m.Close()
	fmt.Fprintf(stdout, "Database %q ready.\n", cfg.DBPath)

	var records sitegrab.RecordService = sqlite.NewRecordService(m.DB)

	robots := m.Robots
	if robots == nil {
		robots = sghttp.NewRobotsService(
			sghttp.WithTimeout(cfg.RobotsTimeout),
			sghttp.WithUserAgent(cfg.UserAgent),
			sghttp.WithRetryDelays(cfg.RetryDelays),
		)
	}

	solver := m.Solver
	if solver == nil {
		solver = sghttp.NewSolverClient(cfg.SolverURL, cfg.SolverKey,
			sghttp.WithTimeout(cfg.SolveTimeout),
			sghttp.WithRetryDelays(cfg.RetryDelays),
			sghttp.WithRate(cfg.SolverRate),
		)
	}

	launcher := m.Launcher
	if launcher == nil {
		var opts []rod.LauncherOption
		if cli.BrowserBin != "" {
			opts = append(opts, rod.WithBrowserBin(cli.BrowserBin))
		}
		launcher = rod.NewLauncher(opts...)
	}

	if cli.Verbose {
		records = sgslog.NewLoggingRecordService(records, logger)
		robots = sgslog.NewLoggingRobots(robots, logger)
		solver = sgslog.NewLoggingSolver(solver, logger)
		launcher = rod.NewLoggingLauncher(launcher, logger)
	}

	classifier := sitegrab.AnyClassifier{
		sitegrab.NewKeywordClassifier(cfg.Keywords...),
		goquery.NewWidgetClassifier(),
	}

	prompter := NewPrompter(stdin, stdout)

	router := resolve.NewRouter(cfg, launcher, classifier, solver, prompter)
	router.Logger = logger

	session := &Session{
		Prompter:  prompter,
		Stdout:    stdout,
		Records:   records,
		Robots:    robots,
		Router:    router,
		Extractor: goquery.NewExtractor(),
		Logger:    logger,
		Interrupt: m.Interrupt,
	}
	return session.Run(ctx)
}
