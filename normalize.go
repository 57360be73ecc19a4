package sitegrab

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<.*?>`)
	// Matches the unicode.IsSpace set so NBSP and em spaces from &nbsp; or
	// typographic markup collapse like ASCII whitespace.
	whitespacePattern = regexp.MustCompile(`[\s\p{Z}\x{0085}]+`)
)

// CleanText applies the text profile: markup is stripped, whitespace runs
// collapse to a single space and the result is trimmed.
func CleanText(s string) string {
	// Collapsing first keeps tags that span lines from surviving the strip
	// and reappearing on a second pass.
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = tagPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanCode applies the code profile: markup is stripped and everything
// else, including indentation and line breaks, is kept verbatim.
func CleanCode(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// CleanTexts applies CleanText to every element of ss.
func CleanTexts(ss []string) []string {
	return mapStrings(ss, CleanText)
}

// CleanCodes applies CleanCode to every element of ss.
func CleanCodes(ss []string) []string {
	return mapStrings(ss, CleanCode)
}

func mapStrings(ss []string, fn func(string) string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fn(s)
	}
	return out
}
