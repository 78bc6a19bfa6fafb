package extract

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/bilgisen/feedharvest/internal/models"
)

// lazyAttrs are consulted in order when src is missing or a placeholder.
var lazyAttrs = []string{"data-src", "data-lazy-src", "data-original"}

// WidthProber reports the pixel width of a remote image.
type WidthProber interface {
	Width(ctx context.Context, imageURL string) (int, error)
}

// Harvester collects qualifying image URLs from a content fragment.
type Harvester struct {
	prober        WidthProber
	acceptUnknown bool
}

// NewHarvester returns a Harvester. prober may be nil, in which case only
// width attributes are considered. acceptUnknown keeps images whose width
// cannot be determined.
func NewHarvester(prober WidthProber, acceptUnknown bool) *Harvester {
	return &Harvester{prober: prober, acceptUnknown: acceptUnknown}
}

// Harvest returns the absolute URLs of images in fragment at least minWidth
// pixels wide, de-duplicated in first-seen order. minWidth <= 0 disables
// the width filter.
func (h *Harvester) Harvest(ctx context.Context, fragment, baseURL string, minWidth int) []string {
	log := logger.Get()
	urls := []string{}

	for _, c := range Candidates(fragment, baseURL) {
		if minWidth <= 0 {
			urls = append(urls, c.URL)
			continue
		}

		width := c.Width
		if width == 0 && h.prober != nil {
			w, err := h.prober.Width(ctx, c.URL)
			if err != nil {
				log.Debug().
					Err(err).
					Str("image_url", c.URL).
					Msg("Could not determine image width")
			}
			width = w
		}

		switch {
		case width == 0 && !h.acceptUnknown:
			log.Debug().Str("image_url", c.URL).Msg("Skipping image with unknown width")
		case width != 0 && width < minWidth:
			log.Debug().
				Str("image_url", c.URL).
				Int("width", width).
				Int("min_width", minWidth).
				Msg("Skipping narrow image")
		default:
			urls = append(urls, c.URL)
		}
	}
	return urls
}

// Candidates enumerates the <img> elements of fragment, resolving each usable
// source against baseURL. Images without a usable source are dropped and the
// result is de-duplicated by absolute URL.
func Candidates(fragment, baseURL string) []models.ImageCandidate {
	candidates := []models.ImageCandidate{}
	if strings.TrimSpace(fragment) == "" {
		return candidates
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return candidates
	}

	seen := make(map[string]bool)
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := imageSource(s)
		if src == "" {
			return
		}
		abs := ResolveURL(src, baseURL)
		if seen[abs] {
			return
		}
		seen[abs] = true

		candidates = append(candidates, models.ImageCandidate{
			URL:    abs,
			Width:  dimension(s, "width"),
			Height: dimension(s, "height"),
		})
	})
	return candidates
}

// FirstImage returns the raw src of the first <img> in fragment, or "".
func FirstImage(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

func imageSource(s *goquery.Selection) string {
	if src, _ := s.Attr("src"); usableSource(src) {
		return strings.TrimSpace(src)
	}
	for _, attr := range lazyAttrs {
		if src, _ := s.Attr(attr); usableSource(src) {
			return strings.TrimSpace(src)
		}
	}
	return ""
}

// usableSource rejects empty values, data URIs and SVG files.
func usableSource(src string) bool {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
		return false
	}
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	return !strings.HasSuffix(strings.ToLower(p), ".svg")
}

func dimension(s *goquery.Selection, attr string) int {
	v, ok := s.Attr(attr)
	if !ok {
		return 0
	}
	v = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(v)), "px")
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
