package goquery_test

import (
	"testing"

	"github.com/fwojciec/sitegrab"
	"github.com/fwojciec/sitegrab/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements sitegrab.ContentExtractor at compile time.
var _ sitegrab.ContentExtractor = (*goquery.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts heading and paragraph from a minimal page", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		got, err := e.Extract(`<h1>Hello</h1><p>World</p>`)

		require.NoError(t, err)
		assert.Equal(t, sitegrab.NoTitle, got.Title)
		assert.Equal(t, []string{"Hello"}, got.Headings)
		assert.Equal(t, []string{"World"}, got.Paragraphs)
		assert.Empty(t, got.Lists)
		assert.Empty(t, got.CodeSnippets)
	})

	t.Run("uses the first title element trimmed", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>  Example Domain
</title></head><body><svg><title>icon</title></svg></body></html>`

		got, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Example Domain", got.Title)
	})

	t.Run("keeps headings of all levels in document order", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<h2>Second</h2>
<h1>First</h1>
<div><h6>Deep</h6></div>
<h3> Third </h3>
</body>`

		got, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"Second", "First", "Deep", "Third"}, got.Headings)
	})

	t.Run("serializes each list as one block including nested lists", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<ul><li>one</li><li>two<ol><li>inner</li></ol></li></ul>
<ol><li>alpha</li></ol>
</body>`

		got, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		require.Len(t, got.Lists, 3)
		assert.Equal(t, "onetwoinner", got.Lists[0])
		assert.Equal(t, "inner", got.Lists[1])
		assert.Equal(t, "alpha", got.Lists[2])
	})

	t.Run("keeps code whitespace apart from outer trimming", func(t *testing.T) {
		t.Parallel()

		html := "<pre><code>\nfunc main() {\n\tprintln(1)\n}\n</code></pre><p>Inline <code>x := 1</code> code</p>"

		got, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"func main() {\n\tprintln(1)\n}", "x := 1"}, got.CodeSnippets)
		assert.Equal(t, []string{"Inline x := 1 code"}, got.Paragraphs)
	})

	t.Run("returns empty sequences for a page without content", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewExtractor().Extract("")

		require.NoError(t, err)
		assert.Equal(t, sitegrab.NoTitle, got.Title)
		assert.Empty(t, got.Headings)
		assert.Empty(t, got.Paragraphs)
		assert.Empty(t, got.Lists)
		assert.Empty(t, got.CodeSnippets)
	})
}
