package api

import (
	"context"
	"time"

	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/bilgisen/feedharvest/internal/middleware"
	"github.com/bilgisen/feedharvest/internal/models"
	"github.com/gofiber/fiber/v2"
)

// FeedParser runs the feed pipeline.
type FeedParser interface {
	ParseFeeds(ctx context.Context, feedURLs []string) []models.FeedItem
}

// ContentResolver resolves a single post.
type ContentResolver interface {
	FetchFullContent(ctx context.Context, postURL string) models.Content
}

// FeedChecker probes whether a URL serves a feed.
type FeedChecker interface {
	URLExists(ctx context.Context, url string) bool
}

// ParseRequest is the body of POST /api/v1/feeds/parse.
type ParseRequest struct {
	FeedURLs []string `json:"feed_urls" validate:"required,min=1,max=50,dive,required,url"`
}

// URLQuery is the ?url= query of the single-URL endpoints.
type URLQuery struct {
	URL string `query:"url" validate:"required,url"`
}

type Handlers struct {
	parser  FeedParser
	content ContentResolver
	checker FeedChecker
	timeout time.Duration
}

// NewHandlers builds the handlers; timeout bounds a whole parse request.
func NewHandlers(parser FeedParser, content ContentResolver, checker FeedChecker, timeout time.Duration) *Handlers {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &Handlers{
		parser:  parser,
		content: content,
		checker: checker,
		timeout: timeout,
	}
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ParseFeeds handles POST /api/v1/feeds/parse
func (h *Handlers) ParseFeeds(c *fiber.Ctx) error {
	req := c.Locals(middleware.ValidatedKey).(*ParseRequest)
	start := time.Now()

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	items := h.parser.ParseFeeds(ctx, req.FeedURLs)

	logger.Info().
		Int("feed_count", len(req.FeedURLs)).
		Int("item_count", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Parsed feeds")

	return c.JSON(fiber.Map{
		"feeds": len(req.FeedURLs),
		"total": len(items),
		"items": items,
	})
}

// FetchContent handles GET /api/v1/content?url=
func (h *Handlers) FetchContent(c *fiber.Ctx) error {
	q := c.Locals(middleware.ValidatedKey).(*URLQuery)
	return c.JSON(h.content.FetchFullContent(c.UserContext(), q.URL))
}

// FeedExists handles GET /api/v1/feeds/exists?url=
func (h *Handlers) FeedExists(c *fiber.Ctx) error {
	q := c.Locals(middleware.ValidatedKey).(*URLQuery)
	return c.JSON(fiber.Map{
		"url":    q.URL,
		"exists": h.checker.URLExists(c.UserContext(), q.URL),
	})
}
