// Package http provides HTTP clients for the robots.txt advisory and the
// CAPTCHA solving service.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/sitegrab"
	"github.com/temoto/robotstxt"
)

// maxRobotsBytes caps how much of a robots.txt body is read.
const maxRobotsBytes = 512 * 1024

// Ensure RobotsService implements sitegrab.RobotsService at compile time.
var _ sitegrab.RobotsService = (*RobotsService)(nil)

// RobotsService fetches robots.txt files for display. Nothing it returns is
// used to allow or block requests.
type RobotsService struct {
	client    *http.Client
	userAgent string
	delays    []time.Duration
}

// Option configures the HTTP clients in this package.
type Option func(*options)

type options struct {
	timeout   time.Duration
	userAgent string
	delays    []time.Duration
	client    *http.Client
	rate      float64
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header and the agent robots rules are
// evaluated for.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithRetryDelays sets the waits between retries of transport failures.
func WithRetryDelays(delays []time.Duration) Option {
	return func(o *options) {
		o.delays = delays
	}
}

// WithHTTPClient replaces the underlying client. The service uses a copy of c
// whose Timeout is the configured timeout, so c itself is left unchanged.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithRate caps requests per second. Only the solver client is limited.
func WithRate(rps float64) Option {
	return func(o *options) {
		o.rate = rps
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		timeout:   sitegrab.DefaultRobotsTimeout,
		userAgent: sitegrab.DefaultUserAgent,
		delays:    sitegrab.DefaultRetryDelays(),
		rate:      sitegrab.DefaultSolverRate,
	}
	for _, opt := range opts {
		opt(o)
	}
	var c http.Client
	if o.client != nil {
		c = *o.client
	}
	c.Timeout = o.timeout
	o.client = &c
	return o
}

// NewRobotsService creates a new RobotsService.
func NewRobotsService(opts ...Option) *RobotsService {
	o := newOptions(opts)
	return &RobotsService{
		client:    o.client,
		userAgent: o.userAgent,
		delays:    o.delays,
	}
}

// RobotsURL returns the robots.txt location for rawURL's origin: the path is
// replaced and the query and fragment are dropped.
func RobotsURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitegrab.Errorf(sitegrab.EINVALID, "invalid URL: %v", err)
	}
	if u.Host == "" {
		return "", sitegrab.Errorf(sitegrab.EINVALID, "URL %q has no host", rawURL)
	}
	robots := url.URL{Scheme: u.Scheme, User: u.User, Host: u.Host, Path: "/robots.txt"}
	return robots.String(), nil
}

// FetchRobots retrieves robots.txt for rawURL's origin. Transport failures
// are retried; a non-200 status is not. Any failure returns EUNAVAILABLE.
func (s *RobotsService) FetchRobots(ctx context.Context, rawURL string) (*sitegrab.RobotsAdvisory, error) {
	robotsURL, err := RobotsURL(rawURL)
	if err != nil {
		return nil, sitegrab.Errorf(sitegrab.EUNAVAILABLE, "robots.txt unavailable: %s", sitegrab.ErrorMessage(err))
	}

	var body []byte
	err = sitegrab.Retry(ctx, s.delays, nil, func(ctx context.Context) error {
		b, err := s.get(ctx, robotsURL)
		body = b
		return err
	})
	if err != nil {
		return nil, sitegrab.Errorf(sitegrab.EUNAVAILABLE, "robots.txt unavailable: %s", describe(err))
	}

	return &sitegrab.RobotsAdvisory{
		RobotsURL: robotsURL,
		Content:   string(body),
		Allowed:   s.allowed(body, rawURL),
	}, nil
}

func (s *RobotsService) get(ctx context.Context, robotsURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, sitegrab.Errorf(sitegrab.EINVALID, "building request: %v", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// A status is a final answer; EINVALID stops the retry loop.
		return nil, sitegrab.Errorf(sitegrab.EINVALID, "HTTP %d for %s", resp.StatusCode, robotsURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return body, nil
}

// allowed evaluates the page path against the robots rules for the tool's
// user agent. Unparseable files allow everything.
func (s *RobotsService) allowed(body []byte, rawURL string) bool {
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, s.userAgent)
}

// describe returns the message of application errors and the full text of
// anything else.
func describe(err error) string {
	if sitegrab.ErrorCode(err) == sitegrab.EINTERNAL {
		return err.Error()
	}
	return sitegrab.ErrorMessage(err)
}
