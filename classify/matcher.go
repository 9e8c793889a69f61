package classify

import (
	"net/url"
	"strings"
)

// Fixed keys the special-case heuristics force a referrer onto when the
// regular fallback chain fails. They must exist in the catalog for the
// override to produce a match.
const (
	googleCustomSearchKey    = "www.google.com/cse"
	privateLabelPathPrefix   = "/pemonitorhosted/ws/results/"
	infospacePrivateLabelKey = "wsdsold.infospace.com"
	yahooImagesKey           = "images.search.yahoo.com"
	yahooKey                 = "search.yahoo.com"

	// yahooRelayHost is Yahoo's click-redirect relay; referrers from it
	// never carry the typed keyword.
	yahooRelayHost = "r.search.yahoo.com"
)

// Resolved is the outcome of host matching: the catalog key that matched
// plus the parsed referrer components the extractor works on. Query is
// the raw query with a non-empty fragment appended as an extra &-joined
// segment, since some engines place the keyword after the fragment.
type Resolved struct {
	Key      string
	Host     string
	Path     string
	Query    string
	Fragment string
	Referrer string
}

// ResolveHost matches a referrer URL against the catalog using the
// ordered fallback chain: exact host+path, exact host, lossy host+path,
// lossy host, then the fixed special-case overrides. First success wins;
// the ordering is a contract, not an optimization. An unparseable or
// hostless referrer is a no-match, never an error.
func (c *Classifier) ResolveHost(referrerURL string) (Resolved, bool) {
	u, err := url.Parse(referrerURL)
	if err != nil || u.Hostname() == "" {
		return Resolved{}, false
	}

	res := Resolved{
		Host:     u.Hostname(),
		Path:     u.EscapedPath(),
		Query:    u.RawQuery,
		Fragment: u.EscapedFragment(),
		Referrer: referrerURL,
	}
	if res.Fragment != "" {
		if res.Query != "" {
			res.Query += "&" + res.Fragment
		} else {
			res.Query = res.Fragment
		}
	}

	try := func(key string) bool {
		if _, ok := c.store.DefinitionFor(key); ok {
			res.Key = key
			return true
		}
		return false
	}

	if try(res.Host+res.Path) || try(res.Host) {
		return res, true
	}

	lossy := c.normalizer(res.Host)
	if try(lossy+res.Path) || try(lossy) {
		return res, true
	}

	// Special-case heuristics, in fixed order.
	var forced string
	switch {
	case strings.HasPrefix(res.Query, "cx=partner-pub-"):
		forced = googleCustomSearchKey
	case strings.HasPrefix(res.Path, privateLabelPathPrefix):
		forced = infospacePrivateLabelKey
	case strings.Contains(res.Host, ".images.search.yahoo.com"):
		forced = yahooImagesKey
	case strings.Contains(res.Host, ".search.yahoo.com"):
		forced = yahooKey
	}
	if forced != "" && try(forced) {
		return res, true
	}

	return Resolved{}, false
}
