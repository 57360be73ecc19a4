package sitegrab

import "context"

// RobotsAdvisory is the robots.txt policy of a page's origin.
// It is shown to the operator and never restricts what the tool does.
type RobotsAdvisory struct {
	RobotsURL string
	Content   string

	// Allowed reports whether the page path is allowed for the tool's
	// user agent according to Content.
	Allowed bool
}

// RobotsService fetches robots.txt advisories.
type RobotsService interface {
	// FetchRobots retrieves the robots.txt of rawURL's origin.
	// Returns EUNAVAILABLE when the file cannot be fetched.
	FetchRobots(ctx context.Context, rawURL string) (*RobotsAdvisory, error)
}
