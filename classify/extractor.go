package classify

import (
	"strings"

	"github.com/trafficlens/refsearch/core"
)

const (
	engineGoogle         = "Google"
	engineGoogleImages   = "Google Images"
	engineGoogleVideo    = "Google Video"
	engineGoogleShopping = "Google Shopping"
	engineYahoo          = "Yahoo!"
)

// Engines whose referrers legitimately carry no keyword: a match on one
// of these with an empty extraction is "matched, no keyword", not
// "no match".
var noKeywordEngines = map[string]struct{}{
	"Ixquick":          {},
	engineGoogleImages: {},
	"DuckDuckGo":       {},
}

// extract pulls the keyword out of a resolved referrer using the
// definition's parameter rules, after the engine-specific overrides have
// had their say. Returns nil, false when the engine yields no usable
// keyword at all (treated as no match by the caller).
func (c *Classifier) extract(res Resolved, def core.Definition) (*core.Match, bool) {
	engine := def.Name
	query := res.Query

	var (
		keyword string
		hidden  bool // confirmed "matched, no keyword"
	)

	// Engine-name overrides driven by structural signals, before any
	// generic parameter extraction.
	switch {
	case engine == engineGoogleImages ||
		(engine == engineGoogle && strings.Contains(res.Referrer, "/imgres")):
		// Image referrers wrap the original search in a "prev" parameter;
		// recover that inner query and extract from it instead.
		if prev, ok := queryParam(query, "prev"); ok {
			decoded := unescape(strings.TrimSpace(prev))
			if i := strings.Index(decoded, "?"); i >= 0 {
				query = strings.ReplaceAll(decoded[i:], "&", "&amp;")
			} else {
				query = ""
			}
		}
		engine = engineGoogleImages

	case engine == engineGoogle &&
		(strings.Contains(query, "&as_") || strings.HasPrefix(query, "as_")):
		// Advanced search: join the as_* parameter family into one term.
		var parts []string
		if v, _ := queryParam(query, "as_q"); v != "" {
			parts = append(parts, v)
		}
		if v, _ := queryParam(query, "as_oq"); v != "" {
			parts = append(parts, strings.ReplaceAll(v, "+", " OR "))
		}
		if v, _ := queryParam(query, "as_epq"); v != "" {
			parts = append(parts, `"`+v+`"`)
		}
		if v, _ := queryParam(query, "as_eq"); v != "" {
			parts = append(parts, "-"+v)
		}
		keyword = strings.TrimSpace(unescape(strings.Join(parts, " ")))
	}

	if engine == engineGoogle {
		if tbm, ok := queryParam(query, "tbm"); ok {
			switch tbm {
			case "isch":
				engine = engineGoogleImages
			case "vid":
				engine = engineGoogleVideo
			case "shop":
				engine = engineGoogleShopping
			}
		}
	}

	if keyword == "" {
		for _, rule := range def.Params {
			if rule.IsPattern() {
				m := rule.Pattern.FindStringSubmatch(res.Referrer)
				if len(m) > 1 {
					keyword = strings.TrimSpace(unescape(m[1]))
					break
				}
				continue
			}

			raw, _ := queryParam(query, rule.Name)
			keyword = strings.TrimSpace(unescape(raw))
			if keyword == "" && noKeywordOverride(engine, res, query, rule.Name) {
				hidden = true
			}
			if keyword != "" || hidden {
				break
			}
		}
	}

	if hidden {
		return &core.Match{Engine: engine, NoKeyword: true}, true
	}
	if keyword == "" {
		return nil, false
	}

	keyword = c.decodeKeyword(keyword, def.Charsets)
	return &core.Match{Engine: engine, Keyword: lowerUTF8(keyword)}, true
}

// noKeywordOverride reports whether an empty extraction should be read as
// a confirmed keyword-less visit rather than a failed match.
func noKeywordOverride(engine string, res Resolved, query, param string) bool {
	// Google home page visit: no query, no path, no fragment.
	if engine == engineGoogle && query == "" &&
		(res.Path == "" || res.Path == "/") && res.Fragment == "" {
		return true
	}
	// Yahoo's redirect relay strips the keyword.
	if engine == engineYahoo && res.Host == yahooRelayHost {
		return true
	}
	// The parameter is present but literally empty.
	if strings.Contains(query, "&"+param+"=") || strings.Contains(query, "?"+param+"=") {
		return true
	}
	_, ok := noKeywordEngines[engine]
	return ok
}
