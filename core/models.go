// Copyright 2026 Trafficlens Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"regexp"
	"strings"
)

// Reserved labels shared between the classifier and its callers.
const (
	// KeywordNotDefined labels a visit whose engine matched but hid the
	// search term (secure search, image referrers, redirect relays).
	KeywordNotDefined = "Keyword not defined"

	// KeywordNotDefinedURL explains the hidden-keyword label to end users.
	// The backlink resolver returns it instead of a search URL when asked
	// to reconstruct a search for KeywordNotDefined.
	KeywordNotDefinedURL = "https://trafficlens.dev/faq/keyword-not-defined"

	// URLUnknown is the sentinel returned when an engine name has no
	// catalog entry. Lookups by name never fail, they return this label.
	URLUnknown = "URL unknown!"
)

// ParamRule describes one way to pull a keyword out of a referrer.
// It is either a literal query parameter name or a regular expression
// applied to the full referrer URL with the keyword in the first capture
// group. Exactly one of Name and Pattern is set.
type ParamRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// LiteralParam builds a rule that reads the named query parameter.
func LiteralParam(name string) ParamRule {
	return ParamRule{Name: name}
}

// PatternParam builds a rule that matches the referrer URL against re.
func PatternParam(re *regexp.Regexp) ParamRule {
	return ParamRule{Pattern: re}
}

// IsPattern reports whether the rule is a regular-expression rule.
func (r ParamRule) IsPattern() bool {
	return r.Pattern != nil
}

// Source returns the textual form of the rule: the parameter name for
// literal rules, the slash-delimited pattern for regex rules.
func (r ParamRule) Source() string {
	if r.Pattern != nil {
		return "/" + r.Pattern.String() + "/"
	}
	return r.Name
}

// ParseParamRule parses a rule in its definitions-document form.
// A value wrapped in slashes ("/…/") is compiled as a regular expression,
// anything else is taken as a literal query parameter name.
func ParseParamRule(s string) (ParamRule, error) {
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		re, err := regexp.Compile(s[1 : len(s)-1])
		if err != nil {
			return ParamRule{}, fmt.Errorf("%w: %q: %v", ErrInvalidParamRule, s, err)
		}
		return PatternParam(re), nil
	}
	return LiteralParam(s), nil
}

// Definition describes one search engine: the parameter rules used to
// extract keywords, an optional backlink pattern with a {k} placeholder,
// and the character encodings its keywords may arrive in (first entry is
// the default). Definitions are immutable once built.
type Definition struct {
	Name     string
	Params   []ParamRule
	Backlink string
	Charsets []string
}

// Clone returns a deep copy of the definition.
func (d Definition) Clone() Definition {
	return Definition{
		Name:     d.Name,
		Params:   append([]ParamRule(nil), d.Params...),
		Backlink: d.Backlink,
		Charsets: append([]string(nil), d.Charsets...),
	}
}

// CatalogEntry pairs a URL pattern (host, or host+path) with the engine
// definition it resolves to.
type CatalogEntry struct {
	Pattern    string
	Definition Definition
}

// Fingerprint identifies the definitions document a catalog was built
// from. Equal fingerprints mean the catalog can be reused without a
// rebuild.
type Fingerprint uint64

// Catalog is the frozen mapping from URL pattern to engine definition.
// Keys keep their first-insertion order so derived structures (the name
// index) stay deterministic. A built catalog is read-only and safe for
// concurrent readers.
type Catalog struct {
	entries     map[string]Definition
	patterns    []string // first-insertion order
	fingerprint Fingerprint
}

// NewCatalog freezes an ordered set of entries into a catalog.
// A later entry for an already-present pattern overwrites the earlier
// definition but keeps the pattern's original position.
func NewCatalog(entries []CatalogEntry, fp Fingerprint) *Catalog {
	c := &Catalog{
		entries:     make(map[string]Definition, len(entries)),
		patterns:    make([]string, 0, len(entries)),
		fingerprint: fp,
	}
	for _, e := range entries {
		if _, seen := c.entries[e.Pattern]; !seen {
			c.patterns = append(c.patterns, e.Pattern)
		}
		c.entries[e.Pattern] = e.Definition.Clone()
	}
	return c
}

// Get returns the definition for a URL pattern.
func (c *Catalog) Get(pattern string) (Definition, bool) {
	d, ok := c.entries[pattern]
	return d, ok
}

// Len returns the number of distinct URL patterns.
func (c *Catalog) Len() int {
	return len(c.patterns)
}

// Entries returns the catalog contents in first-insertion order.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.patterns))
	for _, p := range c.patterns {
		out = append(out, CatalogEntry{Pattern: p, Definition: c.entries[p].Clone()})
	}
	return out
}

// Fingerprint returns the fingerprint of the source document.
func (c *Catalog) Fingerprint() Fingerprint {
	return c.fingerprint
}

// NameIndex maps an engine name to one representative URL pattern, the
// first one encountered in catalog order.
type NameIndex map[string]string

// NameIndex derives the name index from the catalog. The result is
// rebuilt on every call; callers cache it alongside the catalog snapshot.
func (c *Catalog) NameIndex() NameIndex {
	idx := make(NameIndex)
	for _, p := range c.patterns {
		name := c.entries[p].Name
		if _, seen := idx[name]; !seen {
			idx[name] = p
		}
	}
	return idx
}

// Match is the outcome of classifying a referrer URL: the engine that
// produced the visit and the keyword the visitor typed. NoKeyword marks
// a matched engine with a confirmed absence of a keyword, which is
// distinct from no match at all.
type Match struct {
	Engine    string
	Keyword   string
	NoKeyword bool
}

// Label returns the keyword, or the KeywordNotDefined label for
// no-keyword matches.
func (m *Match) Label() string {
	if m.NoKeyword {
		return KeywordNotDefined
	}
	return m.Keyword
}
