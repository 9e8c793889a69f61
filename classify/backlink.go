package classify

import (
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/trafficlens/refsearch/core"
)

const (
	defaultLogoRoot = "engines"
	genericLogo     = "xx.png"
)

// BacklinkFor reconstructs the search-results URL for a keyword on the
// engine reachable at engineURL, letting a caller replay the original
// search. The second return is false when the engine declares no
// backlink pattern; that is a normal outcome, not an error. Asking for
// the reserved KeywordNotDefined label yields the informational URL that
// explains hidden keywords.
func (c *Classifier) BacklinkFor(engineURL, keyword string) (string, bool) {
	if keyword == core.KeywordNotDefined {
		return core.KeywordNotDefinedURL, true
	}

	encoded := url.QueryEscape(keyword)
	encoded = strings.ReplaceAll(encoded, "%2B", "+")

	pattern, ok := c.store.BacklinkPatternFor(hostOf(engineURL))
	if !ok {
		return "", false
	}

	backlink := strings.ReplaceAll(pattern, "{k}", encoded)
	if strings.HasSuffix(engineURL, "/") {
		return engineURL + backlink, true
	}
	return engineURL + "/" + backlink, true
}

// LogoPathFor returns the asset path of the engine's logo, or the
// generic fallback when the asset store has no host-specific file.
func (c *Classifier) LogoPathFor(engineURL string) string {
	candidate := path.Join(c.logoRoot, hostOf(engineURL)+".png")
	if c.assets != nil {
		if _, err := fs.Stat(c.assets, candidate); err == nil {
			return candidate
		}
	}
	return path.Join(c.logoRoot, genericLogo)
}
