package sitegrab_test

import (
	"testing"

	"github.com/fwojciec/sitegrab"
	"github.com/fwojciec/sitegrab/mock"
	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("detects default keywords case-insensitively", func(t *testing.T) {
		t.Parallel()

		c := sitegrab.NewKeywordClassifier()

		assert.True(t, c.Classify("<p>Please complete the CAPTCHA</p>"))
		assert.True(t, c.Classify("Verify you are Human"))
		assert.True(t, c.Classify("Enable JavaScript to continue"))
	})

	t.Run("requires a word boundary", func(t *testing.T) {
		t.Parallel()

		c := sitegrab.NewKeywordClassifier()

		assert.False(t, c.Classify("humanity verified challenges"))
		assert.False(t, c.Classify("<h1>Hello</h1><p>World</p>"))
	})

	t.Run("uses custom keywords", func(t *testing.T) {
		t.Parallel()

		c := sitegrab.NewKeywordClassifier("Cloudflare", " ", "ray id")

		assert.Equal(t, []string{"cloudflare", "ray id"}, c.Keywords())
		assert.True(t, c.Classify("Cloudflare Ray ID: 1234"))
		assert.False(t, c.Classify("please verify"))
	})

	t.Run("escapes regexp metacharacters", func(t *testing.T) {
		t.Parallel()

		c := sitegrab.NewKeywordClassifier("a.b")

		assert.True(t, c.Classify("see a.b here"))
		assert.False(t, c.Classify("see axb here"))
	})

	t.Run("superset of keywords never turns a positive verdict negative", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"captcha",
			"Checking your browser",
			"human resources",
			"nothing to see",
			"verification code sent",
		}
		base := sitegrab.NewKeywordClassifier("captcha", "human")
		superset := sitegrab.NewKeywordClassifier("captcha", "human", "checking", "verification")

		for _, in := range inputs {
			if base.Classify(in) {
				assert.True(t, superset.Classify(in), in)
			}
		}
	})
}

func TestAnyClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("true when any member is true", func(t *testing.T) {
		t.Parallel()

		var calls int
		never := &mock.ChallengeClassifier{ClassifyFn: func(string) bool { calls++; return false }}
		always := &mock.ChallengeClassifier{ClassifyFn: func(string) bool { calls++; return true }}

		assert.True(t, sitegrab.AnyClassifier{never, always, never}.Classify("x"))
		assert.Equal(t, 2, calls, "should stop at first positive")
	})

	t.Run("false when empty", func(t *testing.T) {
		t.Parallel()

		assert.False(t, sitegrab.AnyClassifier{}.Classify("captcha"))
	})
}
