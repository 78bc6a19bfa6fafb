package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><style>body{}</style></head><body>
<div class="nav">menu</div>
<div class="content">First<script type="text/javascript">alert(1)</script></div>
<article><p>Body</p><STYLE media="x">p{}</STYLE></article>
<div class="content">Second</div>
</body></html>`

func TestSelector_DomainRuleUnion(t *testing.T) {
	doc, err := LoadDocument([]byte(articlePage), "text/html")
	require.NoError(t, err)

	s := NewSelector(Rules{
		Domains: map[string]Ruleset{
			"example.com": {Expressions: []string{`//div[@class="content"]`, `//article`}, Policy: PolicyUnion},
		},
		Default: Ruleset{Expressions: []string{"//body"}, Policy: PolicyFirstMatch},
	})

	got := s.Select(doc, "http://example.com/post")
	assert.Equal(t, `<div class="content">First</div><div class="content">Second</div><article><p>Body</p></article>`, got)
}

func TestSelector_FirstMatchStopsAtFirstExpression(t *testing.T) {
	doc, err := LoadDocument([]byte(articlePage), "text/html")
	require.NoError(t, err)

	s := NewSelector(Rules{
		Default: Ruleset{
			Expressions: []string{`//div[@class="missing"]`, `//article`, `//div[@class="content"]`},
			Policy:      PolicyFirstMatch,
		},
	})

	assert.Equal(t, `<article><p>Body</p></article>`, s.Select(doc, "http://other.org/post"))
}

func TestSelector_ExactHostOnly(t *testing.T) {
	doc, err := LoadDocument([]byte(articlePage), "text/html")
	require.NoError(t, err)

	s := NewSelector(Rules{
		Domains: map[string]Ruleset{
			"example.com": {Expressions: []string{`//div[@class="nav"]`}, Policy: PolicyUnion},
		},
		Default: Ruleset{Expressions: []string{`//article`}, Policy: PolicyFirstMatch},
	})

	assert.Equal(t, `<div class="nav">menu</div>`, s.Select(doc, "https://example.com/a"))
	assert.Equal(t, `<article><p>Body</p></article>`, s.Select(doc, "https://www.example.com/a"))
}

func TestSelector_NoMatchAndInvalidExpression(t *testing.T) {
	doc, err := LoadDocument([]byte(articlePage), "text/html")
	require.NoError(t, err)

	s := NewSelector(Rules{
		Default: Ruleset{Expressions: []string{`//div[`, `//section`}, Policy: PolicyUnion},
	})

	assert.Equal(t, "", s.Select(doc, "https://example.com/a"))
	assert.Equal(t, "", s.Select(nil, "https://example.com/a"))
}

func TestSanitize(t *testing.T) {
	in := `<p>a</p><SCRIPT src="x.js"></SCRIPT><style>
.x{}
</style><p>b</p>`
	assert.Equal(t, `<p>a</p><p>b</p>`, Sanitize(in))
}

func TestLoadDocument_NormalizesEncoding(t *testing.T) {
	// "café" in ISO-8859-1
	body := []byte("<html><body><div class=\"content\">caf\xe9</div></body></html>")
	doc, err := LoadDocument(body, "text/html; charset=iso-8859-1")
	require.NoError(t, err)

	s := NewSelector(Rules{Default: Ruleset{Expressions: []string{`//div`}, Policy: PolicyUnion}})
	assert.Equal(t, `<div class="content">café</div>`, s.Select(doc, "http://example.com/"))
}

func TestParsePolicy(t *testing.T) {
	p, ok := ParsePolicy(" Union ")
	assert.True(t, ok)
	assert.Equal(t, PolicyUnion, p)

	_, ok = ParsePolicy("sometimes")
	assert.False(t, ok)
}
