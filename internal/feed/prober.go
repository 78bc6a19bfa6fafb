package feed

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/bilgisen/feedharvest/internal/cache"
	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/bilgisen/feedharvest/internal/models"
	_ "golang.org/x/image/webp"
)

// Downloader returns the raw bytes and content type of a URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, string, error)
}

// ImageProber measures remote images by decoding their headers.
type ImageProber struct {
	downloader Downloader
	cache      cache.ProbeCache
	ttl        time.Duration
}

// NewImageProber returns a prober. probeCache may be nil.
func NewImageProber(downloader Downloader, probeCache cache.ProbeCache, ttl time.Duration) *ImageProber {
	return &ImageProber{downloader: downloader, cache: probeCache, ttl: ttl}
}

// Width returns the pixel width of imageURL.
func (p *ImageProber) Width(ctx context.Context, imageURL string) (int, error) {
	if p.cache != nil {
		width, ok, err := p.cache.GetWidth(ctx, imageURL)
		if err != nil {
			logger.Get().Warn().Err(err).Str("image_url", imageURL).Msg("Probe cache lookup failed")
		} else if ok {
			return width, nil
		}
	}

	data, _, err := p.downloader.Download(ctx, imageURL)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrUnresolvableImage, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("%w: cannot decode %s: %v", models.ErrUnresolvableImage, imageURL, err)
	}

	if p.cache != nil {
		if err := p.cache.SetWidth(ctx, imageURL, cfg.Width, p.ttl); err != nil {
			logger.Get().Warn().Err(err).Str("image_url", imageURL).Msg("Probe cache store failed")
		}
	}
	return cfg.Width, nil
}
