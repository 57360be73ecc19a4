package mock

import "github.com/fwojciec/sitegrab"

var _ sitegrab.ChallengeClassifier = (*ChallengeClassifier)(nil)

// ChallengeClassifier is a mock implementation of sitegrab.ChallengeClassifier.
type ChallengeClassifier struct {
	ClassifyFn func(content string) bool
}

func (c *ChallengeClassifier) Classify(content string) bool {
	return c.ClassifyFn(content)
}
