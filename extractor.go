package sitegrab

// Extraction holds the raw content pulled from rendered HTML, in document
// order, before normalization.
type Extraction struct {
	Title        string
	Headings     []string
	Paragraphs   []string
	Lists        []string
	CodeSnippets []string
}

// Normalize returns a copy with the text profile applied to the title,
// headings, paragraphs and lists, and the code profile applied to code
// snippets.
func (e *Extraction) Normalize() *Extraction {
	return &Extraction{
		Title:        CleanText(e.Title),
		Headings:     CleanTexts(e.Headings),
		Paragraphs:   CleanTexts(e.Paragraphs),
		Lists:        CleanTexts(e.Lists),
		CodeSnippets: CleanCodes(e.CodeSnippets),
	}
}

// Record builds a candidate record for url from the extraction.
func (e *Extraction) Record(url string) *PageRecord {
	return &PageRecord{
		URL:          url,
		Title:        e.Title,
		Headings:     e.Headings,
		Paragraphs:   e.Paragraphs,
		Lists:        e.Lists,
		CodeSnippets: e.CodeSnippets,
	}
}

// ContentExtractor converts rendered HTML into a structured extraction.
type ContentExtractor interface {
	// Extract parses html and returns its title, headings, paragraphs, lists
	// and code blocks. Each value is trimmed but otherwise raw.
	Extract(html string) (*Extraction, error)
}
