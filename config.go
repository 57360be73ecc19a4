package sitegrab

import "time"

// Default configuration values.
const (
	DefaultDBPath            = "web_data.db"
	DefaultUserAgent         = "sitegrab"
	DefaultNavigationTimeout = 30 * time.Second
	DefaultSolveTimeout      = 2 * time.Minute
	DefaultRobotsTimeout     = 10 * time.Second
	DefaultSolverRate        = 1.0
)

// Selectors locate the challenge widgets used by automatic resolution.
type Selectors struct {
	// Challenge matches the element whose src is sent to the solver.
	Challenge string
	// Input matches the field receiving the solution.
	Input string
	// Submit matches the control that submits the solution.
	Submit string
}

// DefaultSelectors returns selectors for common image CAPTCHA forms.
func DefaultSelectors() Selectors {
	return Selectors{
		Challenge: `img[src*="captcha" i], img[id*="captcha" i], .captcha img`,
		Input:     `input[name*="captcha" i], input[id*="captcha" i]`,
		Submit:    `button[type="submit"], input[type="submit"]`,
	}
}

// Config is constructed once at startup and passed to the components that
// need it.
type Config struct {
	DBPath string

	// SolverURL is the endpoint of the CAPTCHA solving service.
	SolverURL string
	// SolverKey authenticates against the solving service.
	SolverKey string
	// SolverRate caps solver submissions per second.
	SolverRate float64

	UserAgent string

	NavigationTimeout time.Duration
	SolveTimeout      time.Duration
	RobotsTimeout     time.Duration

	// RetryDelays are the waits between attempts of retried external calls.
	// The number of retries equals len(RetryDelays).
	RetryDelays []time.Duration

	Selectors Selectors

	// Keywords override DefaultChallengeKeywords when non-empty.
	Keywords []string

	// Headless hides the browser during automatic resolution.
	Headless bool

	// ManualExtract routes the page left open by the operator into
	// extraction after the manual path resumes.
	ManualExtract bool
}

// DefaultRetryDelays returns the backoff delays for retried calls: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:            DefaultDBPath,
		SolverRate:        DefaultSolverRate,
		UserAgent:         DefaultUserAgent,
		NavigationTimeout: DefaultNavigationTimeout,
		SolveTimeout:      DefaultSolveTimeout,
		RobotsTimeout:     DefaultRobotsTimeout,
		RetryDelays:       DefaultRetryDelays(),
		Selectors:         DefaultSelectors(),
		Headless:          true,
		ManualExtract:     true,
	}
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return Errorf(EINVALID, "database path required")
	}
	if c.NavigationTimeout <= 0 {
		return Errorf(EINVALID, "navigation timeout must be positive")
	}
	if c.SolveTimeout <= 0 {
		return Errorf(EINVALID, "solve timeout must be positive")
	}
	if c.RobotsTimeout <= 0 {
		return Errorf(EINVALID, "robots timeout must be positive")
	}
	if c.SolverRate <= 0 {
		return Errorf(EINVALID, "solver rate must be positive")
	}
	if c.Selectors.Challenge == "" || c.Selectors.Input == "" || c.Selectors.Submit == "" {
		return Errorf(EINVALID, "challenge, input and submit selectors required")
	}
	return nil
}
