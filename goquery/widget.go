package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitegrab"
)

// DefaultWidgetSelectors match the markup of common challenge providers.
var DefaultWidgetSelectors = []string{
	"[data-sitekey]",
	".g-recaptcha",
	".h-captcha",
	".cf-turnstile",
	"#challenge-form",
	"#cf-challenge-running",
	"iframe[src*='captcha']",
	"iframe[src*='challenges.cloudflare.com']",
}

// Ensure WidgetClassifier implements sitegrab.ChallengeClassifier at compile time.
var _ sitegrab.ChallengeClassifier = (*WidgetClassifier)(nil)

// WidgetClassifier identifies challenge pages by the widgets they embed
// rather than by the words they contain. It checks provider-specific
// classes, data attributes and iframes.
type WidgetClassifier struct {
	selectors []string
}

// NewWidgetClassifier creates a WidgetClassifier for the given selectors.
// DefaultWidgetSelectors are used when none are given.
func NewWidgetClassifier(selectors ...string) *WidgetClassifier {
	if len(selectors) == 0 {
		selectors = DefaultWidgetSelectors
	}
	return &WidgetClassifier{selectors: selectors}
}

// Classify returns true if content contains at least one known widget.
// Content that cannot be parsed is reported as challenge-free.
func (c *WidgetClassifier) Classify(content string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return false
	}

	for _, selector := range c.selectors {
		if c.hasSelector(doc, selector) {
			return true
		}
	}
	return false
}

// hasSelector checks if the document contains at least one element matching the selector.
func (c *WidgetClassifier) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
