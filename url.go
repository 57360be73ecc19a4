package sitegrab

import "strings"

// ValidateURL reports whether rawURL uses the http or https scheme.
// Only the prefix is checked; the URL is not parsed or canonicalized.
func ValidateURL(rawURL string) error {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return nil
	}
	return Errorf(EINVALID, "invalid URL %q: must start with http:// or https://", rawURL)
}
