package feed

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bilgisen/feedharvest/internal/extract"
	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/bilgisen/feedharvest/internal/models"
	"github.com/mmcdole/gofeed"
)

// FeedSource fetches and parses feed documents.
type FeedSource interface {
	FetchFeed(ctx context.Context, url string) (*gofeed.Feed, error)
}

// ContentSource resolves an item's full article.
type ContentSource interface {
	FetchFullContent(ctx context.Context, postURL string) models.Content
}

// ImageSaver downloads and persists one image.
type ImageSaver interface {
	Save(ctx context.Context, imageURL string) (models.StoredImage, error)
}

type Processor struct {
	feeds       FeedSource
	content     ContentSource
	images      ImageSaver
	concurrency int
}

// NewProcessor wires the collaborators of the feed pipeline. images may be
// nil, in which case harvested images are not persisted. concurrency <= 1
// processes items strictly one after another.
func NewProcessor(feeds FeedSource, content ContentSource, images ImageSaver, concurrency int) *Processor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Processor{
		feeds:       feeds,
		content:     content,
		images:      images,
		concurrency: concurrency,
	}
}

// ParseFeeds processes feedURLs in order and returns their items in document
// order. A feed that cannot be fetched or parsed is skipped.
func (p *Processor) ParseFeeds(ctx context.Context, feedURLs []string) []models.FeedItem {
	log := logger.Component("processor")
	start := time.Now()
	log.Info().
		Strs("feed_urls", feedURLs).
		Msg("Starting to process feeds")

	items := []models.FeedItem{}
	skipped := 0
	for _, feedURL := range feedURLs {
		if ctx.Err() != nil {
			log.Warn().
				Err(ctx.Err()).
				Int("processed_items", len(items)).
				Msg("Context cancelled while processing feeds")
			break
		}

		feedItems, err := p.ParseFeed(ctx, feedURL)
		if err != nil {
			skipped++
			log.Warn().
				Err(err).
				Str("feed_url", feedURL).
				Msg("Skipping feed")
			continue
		}
		items = append(items, feedItems...)
	}

	log.Info().
		Int("total_items", len(items)).
		Int("skipped_feeds", skipped).
		Dur("total_duration", time.Since(start)).
		Msg("Finished processing feeds")

	return items
}

// ParseFeed processes a single feed. Only fetching or parsing the feed
// document itself can fail; item-level problems degrade to empty content.
func (p *Processor) ParseFeed(ctx context.Context, feedURL string) ([]models.FeedItem, error) {
	log := logger.Component("processor")
	start := time.Now()

	parsed, err := p.feeds.FetchFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	results := make([]models.FeedItem, len(parsed.Items))
	if p.concurrency == 1 {
		for i, item := range parsed.Items {
			results[i] = p.processItem(ctx, parsed, item)
		}
	} else {
		var wg sync.WaitGroup
		semaphore := make(chan struct{}, p.concurrency)

		for i, item := range parsed.Items {
			semaphore <- struct{}{}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-semaphore }()
				// each worker owns its slot, no locking needed
				results[i] = p.processItem(ctx, parsed, item)
			}()
		}
		wg.Wait()
	}

	log.Info().
		Str("feed_url", feedURL).
		Str("channel", parsed.Title).
		Int("items", len(results)).
		Dur("duration", time.Since(start)).
		Msg("Processed feed")

	return results, nil
}

func (p *Processor) processItem(ctx context.Context, channel *gofeed.Feed, item *gofeed.Item) models.FeedItem {
	link := strings.TrimSpace(item.Link)

	record := models.FeedItem{
		Title:              strings.TrimSpace(item.Title),
		Link:               link,
		PubDate:            item.Published,
		PublishedAt:        item.PublishedParsed,
		Description:        item.Description,
		Images:             []models.StoredImage{},
		LeadImage:          extract.FirstImage(item.Description),
		ChannelTitle:       channel.Title,
		ChannelLink:        channel.Link,
		ChannelDescription: channel.Description,
	}
	if record.PubDate == "" {
		record.PubDate = item.Updated
		record.PublishedAt = item.UpdatedParsed
	}

	if link == "" {
		logger.Get().Warn().Str("title", record.Title).Msg("Skipping content of item with empty link")
		return record
	}

	content := p.content.FetchFullContent(ctx, link)
	record.Content = content.HTML

	if p.images == nil {
		return record
	}
	for _, imageURL := range content.Images {
		stored, err := p.images.Save(ctx, imageURL)
		if err != nil {
			logger.Get().Warn().
				Err(err).
				Str("url", link).
				Str("image_url", imageURL).
				Msg("Skipping image")
			continue
		}
		record.Images = append(record.Images, stored)
	}
	return record
}
