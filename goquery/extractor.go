// Package goquery implements HTML content extraction and challenge widget
// detection using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitegrab"
)

// Selectors for the extracted content types.
const (
	headingSelector   = "h1, h2, h3, h4, h5, h6"
	paragraphSelector = "p"
	listSelector      = "ul, ol"
	codeSelector      = "code"
)

// Ensure Extractor implements sitegrab.ContentExtractor at compile time.
var _ sitegrab.ContentExtractor = (*Extractor)(nil)

// Extractor converts rendered HTML into an ordered, structured extraction.
// Nested elements are not de-duplicated: a list inside a paragraph appears
// in both the paragraph and the list sequences.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns the title and the text of headings,
// paragraphs, lists and code blocks in document order.
func (e *Extractor) Extract(html string) (*sitegrab.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitegrab.Errorf(sitegrab.EINVALID, "failed to parse HTML: %v", err)
	}

	title := sitegrab.NoTitle
	if sel := doc.Find("title").First(); sel.Length() > 0 {
		title = strings.TrimSpace(sel.Text())
	}

	return &sitegrab.Extraction{
		Title:        title,
		Headings:     texts(doc, headingSelector),
		Paragraphs:   texts(doc, paragraphSelector),
		Lists:        texts(doc, listSelector),
		CodeSnippets: texts(doc, codeSelector),
	}, nil
}

// texts returns the trimmed text of every element matching selector.
func texts(doc *goquery.Document, selector string) []string {
	sel := doc.Find(selector)
	out := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
