package extract

import (
	"net/url"
	"regexp"
	"strings"
)

var schemeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// HasScheme reports whether ref already carries a URL scheme.
func HasScheme(ref string) bool {
	return schemeRegex.MatchString(ref)
}

// ResolveURL turns ref into an absolute URL using the origin of base.
// Absolute refs are returned unchanged. Query strings and fragments on ref stay
// attached to it; only base's scheme, host and directory are used.
func ResolveURL(ref, base string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || HasScheme(ref) {
		return ref
	}

	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" || b.Host == "" {
		return ref
	}
	origin := b.Scheme + "://" + b.Host

	switch {
	case strings.HasPrefix(ref, "//"):
		// protocol-relative
		return b.Scheme + ":" + ref
	case strings.HasPrefix(ref, "/"):
		return origin + ref
	}

	dir := ""
	if i := strings.LastIndex(b.Path, "/"); i > 0 {
		dir = b.Path[:i]
	}
	return origin + dir + "/" + ref
}

// Host returns the lower-cased host of rawURL without port, or "" when it
// cannot be parsed.
func Host(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
