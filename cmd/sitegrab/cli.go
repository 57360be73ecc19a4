package main

import (
	"time"

	"github.com/fwojciec/sitegrab"
)

// CLI defines the command-line flags for Kong.
type CLI struct {
	DB                string          `name:"db" env:"SITEGRAB_DB" default:"web_data.db" help:"SQLite database path"`
	SolverURL         string          `name:"solver-url" env:"SITEGRAB_SOLVER_URL" help:"CAPTCHA solving service endpoint"`
	SolverKey         string          `name:"solver-key" env:"SITEGRAB_SOLVER_KEY" help:"CAPTCHA solving service API key"`
	SolverRate        float64         `name:"solver-rate" default:"1" help:"Maximum solver submissions per second"`
	UserAgent         string          `name:"user-agent" env:"SITEGRAB_USER_AGENT" default:"sitegrab" help:"User agent for robots.txt requests and rule evaluation"`
	NavigationTimeout time.Duration   `name:"navigation-timeout" default:"30s" help:"Timeout for each page load"`
	SolveTimeout      time.Duration   `name:"solve-timeout" default:"2m" help:"Timeout for the solving service"`
	RobotsTimeout     time.Duration   `name:"robots-timeout" default:"10s" help:"Timeout for fetching robots.txt"`
	RetryDelay        []time.Duration `name:"retry-delay" default:"1s,2s" help:"Waits between retries of failed network calls"`
	Keyword           []string        `name:"keyword" short:"k" help:"Challenge keyword (repeatable, replaces the defaults)"`
	ChallengeSelector string          `name:"challenge-selector" help:"Selector of the CAPTCHA image"`
	InputSelector     string          `name:"input-selector" help:"Selector of the solution input"`
	SubmitSelector    string          `name:"submit-selector" help:"Selector of the submit control"`
	Headful           bool            `name:"headful" help:"Show the browser during automatic resolution"`
	NoManualExtract   bool            `name:"no-manual-extract" help:"Do not store the page left open after manual solving"`
	BrowserBin        string          `name:"browser-bin" env:"SITEGRAB_BROWSER" help:"Path to a Chrome or Chromium binary"`
	Verbose           bool            `short:"v" help:"Log every browser, network and storage operation"`
}

// Config builds the runtime configuration from the parsed flags.
func (c *CLI) Config() sitegrab.Config {
	cfg := sitegrab.DefaultConfig()
	cfg.DBPath = c.DB
	cfg.SolverURL = c.SolverURL
	cfg.SolverKey = c.SolverKey
	cfg.SolverRate = c.SolverRate
	cfg.UserAgent = c.UserAgent
	cfg.NavigationTimeout = c.NavigationTimeout
	cfg.SolveTimeout = c.SolveTimeout
	cfg.RobotsTimeout = c.RobotsTimeout
	cfg.RetryDelays = c.RetryDelay
	cfg.Keywords = c.Keyword
	if c.ChallengeSelector != "" {
		cfg.Selectors.Challenge = c.ChallengeSelector
	}
	if c.InputSelector != "" {
		cfg.Selectors.Input = c.InputSelector
	}
	if c.SubmitSelector != "" {
		cfg.Selectors.Submit = c.SubmitSelector
	}
	cfg.Headless = !c.Headful
	cfg.ManualExtract = !c.NoManualExtract
	return cfg
}
