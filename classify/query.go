package classify

import (
	"net/url"
	"strings"
)

// queryParam returns the raw (still percent-encoded) value of the first
// occurrence of name in a query string. A leading '?' is ignored, bare
// "name" segments count as present with an empty value.
func queryParam(query, name string) (string, bool) {
	query = strings.TrimPrefix(query, "?")
	for _, segment := range strings.Split(query, "&") {
		key, value, hasValue := strings.Cut(segment, "=")
		if key != name {
			continue
		}
		if !hasValue {
			return "", true
		}
		return value, true
	}
	return "", false
}

// unescape percent-decodes s the forgiving way referrer noise demands:
// on a malformed escape the original string is kept. '+' decodes to a
// space, like query components do.
func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// hostOf extracts the host part of a URL string without requiring a
// parseable URL: everything between a "//" (if any) and the next slash.
// Catalog patterns like "google.com" pass through unchanged.
func hostOf(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[i+2:]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}
