package classify

import "regexp"

// Normalizer coarsens a referrer host into the "lossy" form used as a
// matching fallback: variable subdomain noise stripped, country TLD
// variants collapsed to a "{}" placeholder. The result is only ever used
// as a catalog key and is never returned to the caller as the true host.
type Normalizer func(host string) string

// Applied in order, like a chain of rewrites. The first two strip www/wwwN,
// search. and m. prefixes, the last two collapse country TLDs so e.g.
// www.google.co.uk and www2.google.fr both normalize to google.{}.
var lossyRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`^(w+[0-9]*|search)\.`), ""},
	{regexp.MustCompile(`(^|\.)m\.`), "${1}"},
	{regexp.MustCompile(`(\.(com|org|net|co|it|edu))?\.(uk|fr|de|it|au|ru|pl|hu|se|nl|cz|kr|jp|in|br|pt|es|mx|ar|tw|ca)(/|$)`), ".{}${4}"},
	{regexp.MustCompile(`(^|\.)(ar|com|co|edu|org|net|search)\.(ao|au|bd|bo|br|ck|cn|cr|do|ec|eg|et|fj|gh|gt|hk|id|il|in|jm|ke|kh|kw|lb|ly|mm|mt|mx|my|na|ng|ni|np|nz|om|pa|pe|pg|ph|pk|pr|py|qa|sa|sb|sg|sl|sv|th|tr|tw|ua|ug|uk|uy|ve|vn|za|zm|zw)(/|$)`), "${1}{}${4}"},
}

// LossyHost is the default Normalizer.
func LossyHost(host string) string {
	for _, rule := range lossyRules {
		host = rule.re.ReplaceAllString(host, rule.repl)
	}
	return host
}
