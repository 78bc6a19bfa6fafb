package feed

import (
	"context"

	"github.com/bilgisen/feedharvest/internal/extract"
	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/bilgisen/feedharvest/internal/models"
)

// PageGetter fetches a web page.
type PageGetter interface {
	Get(ctx context.Context, url string, headers map[string]string) (*Response, error)
}

// ContentFetcher resolves the full article body of a feed item.
type ContentFetcher struct {
	pages     PageGetter
	selector  *extract.Selector
	harvester *extract.Harvester
	minWidth  int
}

func NewContentFetcher(pages PageGetter, selector *extract.Selector, harvester *extract.Harvester, minWidth int) *ContentFetcher {
	return &ContentFetcher{
		pages:     pages,
		selector:  selector,
		harvester: harvester,
		minWidth:  minWidth,
	}
}

// FetchFullContent fetches postURL, selects its main content and harvests
// its images. Extraction is best effort: any failure yields empty content.
func (c *ContentFetcher) FetchFullContent(ctx context.Context, postURL string) models.Content {
	log := logger.Get()
	empty := models.Content{Images: []string{}}

	resp, err := c.pages.Get(ctx, postURL, map[string]string{"Accept": "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"})
	if err != nil {
		log.Warn().Err(err).Str("url", postURL).Msg("Skipping content of unreachable page")
		return empty
	}

	doc, err := extract.LoadDocument(resp.Body, resp.ContentType)
	if err != nil {
		log.Warn().Err(err).Str("url", postURL).Msg("Skipping content of malformed page")
		return empty
	}

	html := c.selector.Select(doc, postURL)
	if html == "" {
		logger.Debug().Str("url", postURL).Msg("No content selector matched")
		return empty
	}

	return models.Content{
		HTML:   html,
		Images: c.harvester.Harvest(ctx, html, postURL, c.minWidth),
	}
}
