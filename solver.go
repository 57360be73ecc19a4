package sitegrab

import (
	"context"
	"strings"
)

// SolverChoice is the resolution path selected by the operator for one URL.
type SolverChoice string

// SolverChoice constants.
const (
	ChoiceManual    SolverChoice = "manual"
	ChoiceAutomatic SolverChoice = "auto"
)

// ParseSolverChoice parses an operator answer, ignoring case and surrounding
// whitespace. Returns EINVALID for anything other than "manual" or "auto".
func ParseSolverChoice(s string) (SolverChoice, error) {
	switch SolverChoice(strings.ToLower(strings.TrimSpace(s))) {
	case ChoiceManual:
		return ChoiceManual, nil
	case ChoiceAutomatic:
		return ChoiceAutomatic, nil
	}
	return "", Errorf(EINVALID, "invalid choice %q: enter 'manual' or 'auto'", s)
}

// ResolutionOutcome summarizes how a challenge was handled for one URL.
type ResolutionOutcome string

// ResolutionOutcome constants.
const (
	OutcomeNotNeeded          ResolutionOutcome = "not_needed"
	OutcomeSolved             ResolutionOutcome = "solved"
	OutcomeFailed             ResolutionOutcome = "failed"
	OutcomeDeferredToOperator ResolutionOutcome = "deferred_to_operator"
)

// CaptchaSolver submits a challenge payload to an external solving service.
type CaptchaSolver interface {
	// Solve returns the solution for payload. An empty solution with a nil
	// error means the service answered without a usable solution.
	Solve(ctx context.Context, payload string) (string, error)
}

// Resumer is the operator gate of the manual path.
type Resumer interface {
	// WaitForOperator shows instructions and blocks until the operator
	// signals completion. There is no timeout; it returns ctx.Err() if the
	// context is cancelled first.
	WaitForOperator(ctx context.Context, instructions string) error
}
