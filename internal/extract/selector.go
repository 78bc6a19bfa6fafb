package extract

import (
	"regexp"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/bilgisen/feedharvest/internal/logger"
	"golang.org/x/net/html"
)

// Policy decides how the expressions of a ruleset are combined.
type Policy string

const (
	// PolicyUnion concatenates every match of every expression, in
	// expression order and then document order.
	PolicyUnion Policy = "union"
	// PolicyFirstMatch stops at the first expression that matches anything.
	PolicyFirstMatch Policy = "first"
)

// ParsePolicy maps a configuration value to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyUnion:
		return PolicyUnion, true
	case PolicyFirstMatch:
		return PolicyFirstMatch, true
	}
	return "", false
}

// Ruleset is an ordered list of XPath expressions for one site.
type Ruleset struct {
	Expressions []string
	Policy      Policy
}

// Rules maps exact hosts to rulesets, falling back to Default.
type Rules struct {
	Domains map[string]Ruleset
	Default Ruleset
}

// For returns the ruleset for postURL's host. Only exact host matches count,
// "www.example.com" does not use the "example.com" rules.
func (r Rules) For(postURL string) Ruleset {
	if rs, ok := r.Domains[Host(postURL)]; ok && len(rs.Expressions) > 0 {
		return rs
	}
	return r.Default
}

var (
	scriptRegex = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRegex  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
)

// Sanitize removes <script> and <style> elements from serialized HTML.
func Sanitize(fragment string) string {
	fragment = scriptRegex.ReplaceAllString(fragment, "")
	fragment = styleRegex.ReplaceAllString(fragment, "")
	return strings.TrimSpace(fragment)
}

// Selector picks the main-content subtree of a page.
type Selector struct {
	rules Rules
}

func NewSelector(rules Rules) *Selector {
	return &Selector{rules: rules}
}

// Select serializes the nodes matched by the ruleset for postURL and returns
// the sanitized HTML. No match yields "".
func (s *Selector) Select(doc *html.Node, postURL string) string {
	if doc == nil {
		return ""
	}
	rs := s.rules.For(postURL)

	var b strings.Builder
	for _, expr := range rs.Expressions {
		nodes, err := htmlquery.QueryAll(doc, expr)
		if err != nil {
			logger.Get().Warn().
				Err(err).
				Str("xpath", expr).
				Str("url", postURL).
				Msg("Skipping invalid XPath expression")
			continue
		}
		for _, n := range nodes {
			b.WriteString(htmlquery.OutputHTML(n, true))
		}
		if len(nodes) > 0 && rs.Policy == PolicyFirstMatch {
			break
		}
	}
	return Sanitize(b.String())
}
