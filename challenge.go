package sitegrab

import (
	"regexp"
	"strings"
)

// ChallengeClassifier decides whether rendered page content presents an
// anti-bot challenge (CAPTCHA or JavaScript verification).
// Implementations must be pure functions of their input.
type ChallengeClassifier interface {
	Classify(content string) bool
}

// DefaultChallengeKeywords are the terms KeywordClassifier looks for when no
// keywords are supplied.
var DefaultChallengeKeywords = []string{"captcha", "verification", "challenge", "javascript", "verify", "human"}

// Ensure KeywordClassifier implements ChallengeClassifier at compile time.
var _ ChallengeClassifier = (*KeywordClassifier)(nil)

// KeywordClassifier flags content containing any configured keyword as a
// whole word. It is a heuristic: prose mentioning "JavaScript" is a false
// positive and challenges avoiding these words are missed.
type KeywordClassifier struct {
	keywords []string
	patterns []*regexp.Regexp
}

// NewKeywordClassifier compiles a classifier for the given keywords.
// DefaultChallengeKeywords are used when none are given.
func NewKeywordClassifier(keywords ...string) *KeywordClassifier {
	if len(keywords) == 0 {
		keywords = DefaultChallengeKeywords
	}
	c := &KeywordClassifier{}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		c.keywords = append(c.keywords, kw)
		c.patterns = append(c.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return c
}

// Keywords returns the normalized keyword list.
func (c *KeywordClassifier) Keywords() []string {
	return append([]string(nil), c.keywords...)
}

// Classify returns true on the first keyword found at a word boundary.
func (c *KeywordClassifier) Classify(content string) bool {
	lower := strings.ToLower(content)
	for _, p := range c.patterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// Ensure AnyClassifier implements ChallengeClassifier at compile time.
var _ ChallengeClassifier = AnyClassifier(nil)

// AnyClassifier reports a challenge when any of its members does.
type AnyClassifier []ChallengeClassifier

// Classify evaluates members in order and stops at the first positive verdict.
func (a AnyClassifier) Classify(content string) bool {
	for _, c := range a {
		if c.Classify(content) {
			return true
		}
	}
	return false
}
