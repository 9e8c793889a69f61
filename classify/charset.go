package classify

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/language"
)

// Detector chooses a source encoding for a keyword among the charsets an
// engine declares. Implementations return false when they cannot decide;
// the classifier then falls back to the engine's default (first) charset.
type Detector interface {
	Detect(input []byte, charsets []string) (string, bool)
}

// heuristicDetector is the default Detector: prefer a declared UTF-8
// charset when the input already is valid UTF-8, otherwise the first
// declared non-UTF-8 charset.
type heuristicDetector struct{}

var _ Detector = heuristicDetector{}

func (heuristicDetector) Detect(input []byte, charsets []string) (string, bool) {
	if utf8.Valid(input) {
		for _, cs := range charsets {
			if isUTF8Name(cs) {
				return cs, true
			}
		}
		return "", false
	}
	for _, cs := range charsets {
		if !isUTF8Name(cs) {
			return cs, true
		}
	}
	return "", false
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// decodeKeyword converts a keyword from the engine's source encoding to
// UTF-8. Decode failures are non-fatal: the original bytes are kept.
// Bytes the decoder cannot map are dropped rather than surfaced as
// replacement runes.
func (c *Classifier) decodeKeyword(keyword string, charsets []string) string {
	if len(charsets) == 0 {
		return keyword
	}

	name := charsets[0]
	if len(charsets) > 1 && c.detector != nil {
		if detected, ok := c.detector.Detect([]byte(keyword), charsets); ok {
			name = detected
		}
	}
	if isUTF8Name(name) {
		return keyword
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		c.logger.Debug("unknown charset in definition", "charset", name)
		return keyword
	}
	decoded, err := enc.NewDecoder().String(keyword)
	if err != nil {
		return keyword
	}
	return strings.ReplaceAll(decoded, string(utf8.RuneError), "")
}

// lowerUTF8 lowercases a keyword with language-neutral Unicode case
// mapping.
func lowerUTF8(s string) string {
	return cases.Lower(language.Und).String(s)
}
