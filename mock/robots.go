package mock

import (
	"context"

	"github.com/fwojciec/sitegrab"
)

var _ sitegrab.RobotsService = (*RobotsService)(nil)

// RobotsService is a mock implementation of sitegrab.RobotsService.
type RobotsService struct {
	FetchRobotsFn func(ctx context.Context, rawURL string) (*sitegrab.RobotsAdvisory, error)
}

func (s *RobotsService) FetchRobots(ctx context.Context, rawURL string) (*sitegrab.RobotsAdvisory, error) {
	return s.FetchRobotsFn(ctx, rawURL)
}
