package extract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bilgisen/feedharvest/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// LoadDocument decodes body to UTF-8 using the declared content type (and
// <meta charset> sniffing) and parses it into a DOM tree. The HTML5 parser
// repairs malformed markup, so errors only surface for unreadable input.
func LoadDocument(body []byte, contentType string) (*html.Node, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		// unknown charset label, parse the raw bytes instead
		r = bytes.NewReader(body)
	}
	return parse(r)
}

func parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	return doc, nil
}
