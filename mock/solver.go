package mock

import (
	"context"

	"github.com/fwojciec/sitegrab"
)

var (
	_ sitegrab.CaptchaSolver = (*CaptchaSolver)(nil)
	_ sitegrab.Resumer       = (*Resumer)(nil)
)

// CaptchaSolver is a mock implementation of sitegrab.CaptchaSolver.
type CaptchaSolver struct {
	SolveFn func(ctx context.Context, payload string) (string, error)
}

func (s *CaptchaSolver) Solve(ctx context.Context, payload string) (string, error) {
	return s.SolveFn(ctx, payload)
}

// Resumer is a mock implementation of sitegrab.Resumer.
type Resumer struct {
	WaitForOperatorFn func(ctx context.Context, instructions string) error
}

func (r *Resumer) WaitForOperator(ctx context.Context, instructions string) error {
	return r.WaitForOperatorFn(ctx, instructions)
}
