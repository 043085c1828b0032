// Package urlnorm canonicalizes listing URLs so that deduplication can key on
// a single stable string form.
package urlnorm

import (
	"net/url"
	"regexp"
	"strings"
)

var slashRuns = regexp.MustCompile(`/+`)

// Schemes that cannot be navigated to by a browser session. Hrefs using them
// normalize to the empty sentinel.
var unusableSchemes = []string{"javascript:", "mailto:", "tel:", "data:", "about:"}

// Normalizer resolves relative references against a fixed search origin and
// produces canonical URL keys.
type Normalizer struct {
	origin *url.URL
}

func New(origin string) (*Normalizer, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, err
	}
	return &Normalizer{origin: u}, nil
}

// Normalize returns the canonical form of raw, or "" when raw is empty, uses a
// non-navigable scheme, or fails to parse. The canonical form has no query or
// fragment, an https default scheme, a lowercase host without a leading www.,
// and a path with collapsed slashes and no trailing slash.
func (n *Normalizer) Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	for _, scheme := range unusableSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Host == "" {
		u = n.origin.ResolveReference(u)
		if u.Host == "" {
			return ""
		}
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "" || scheme == "http" {
		scheme = "https"
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	path := slashRuns.ReplaceAllString(u.EscapedPath(), "/")
	path = strings.TrimRight(path, "/")

	return scheme + "://" + host + path
}
