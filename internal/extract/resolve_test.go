package extract

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		base string
		want string
	}{
		{"absolute unchanged", "https://cdn.example.com/a.jpg", "http://example.com/post", "https://cdn.example.com/a.jpg"},
		{"root relative", "/img/a.jpg", "https://example.com/blog/post", "https://example.com/img/a.jpg"},
		{"document relative", "a.jpg", "https://example.com/blog/2024/post", "https://example.com/blog/2024/a.jpg"},
		{"document relative at root", "a.jpg", "https://example.com/post", "https://example.com/a.jpg"},
		{"base without path", "a.jpg", "https://example.com", "https://example.com/a.jpg"},
		{"trailing slash base", "a.jpg", "https://example.com/blog/", "https://example.com/blog/a.jpg"},
		{"keeps query and fragment", "/a.jpg?w=800#x", "https://example.com/post?id=1", "https://example.com/a.jpg?w=800#x"},
		{"protocol relative", "//cdn.example.com/a.jpg", "https://example.com/post", "https://cdn.example.com/a.jpg"},
		{"keeps port", "/a.jpg", "http://localhost:8080/post", "http://localhost:8080/a.jpg"},
		{"data uri has scheme", "data:image/png;base64,AAAA", "https://example.com/", "data:image/png;base64,AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveURL(tt.ref, tt.base))
		})
	}
}

func TestResolveURL_RelativeKeepsBaseOrigin(t *testing.T) {
	bases := []string{"https://example.com/a/b", "http://news.example.org:8443/x", "https://example.com"}
	refs := []string{"img.png", "/img.png", "../img.png", "img.png?x=1"}

	for _, base := range bases {
		b, _ := url.Parse(base)
		for _, ref := range refs {
			got, err := url.Parse(ResolveURL(ref, base))
			if assert.NoError(t, err) {
				assert.Equal(t, b.Scheme, got.Scheme, "ref %q base %q", ref, base)
				assert.Equal(t, b.Host, got.Host, "ref %q base %q", ref, base)
			}
		}
	}
}

func TestHost(t *testing.T) {
	assert.Equal(t, "example.com", Host("http://Example.com:8080/post"))
	assert.Equal(t, "", Host("::not a url"))
}
