package app

import (
	"context"
	"fmt"

	"github.com/bilgisen/feedharvest/internal/cache"
	"github.com/bilgisen/feedharvest/internal/config"
	"github.com/bilgisen/feedharvest/internal/extract"
	"github.com/bilgisen/feedharvest/internal/feed"
	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/bilgisen/feedharvest/internal/storage"
)

// Pipeline holds the wired collaborators of the harvesting pipeline.
type Pipeline struct {
	Fetcher   *feed.Fetcher
	Content   *feed.ContentFetcher
	Processor *feed.Processor
	Cache     cache.ProbeCache
}

// Build wires the pipeline from cfg. Close must be called when done.
func Build(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	fetcher := feed.NewFetcher(feed.FetcherOptions{
		Timeout:    cfg.HTTPTimeout,
		RetryCount: cfg.HTTPRetryCount,
		UserAgent:  cfg.UserAgent,
	})

	probeCache, err := newProbeCache(cfg)
	if err != nil {
		return nil, err
	}

	sink, err := newSink(ctx, cfg)
	if err != nil {
		_ = probeCache.Close()
		return nil, err
	}

	prober := feed.NewImageProber(fetcher, probeCache, cfg.CacheTTL)
	content := feed.NewContentFetcher(
		fetcher,
		extract.NewSelector(cfg.Rules()),
		extract.NewHarvester(prober, cfg.AcceptUnknownWidth),
		cfg.MinImageWidth,
	)
	images := storage.NewImageStore(fetcher, sink)

	return &Pipeline{
		Fetcher:   fetcher,
		Content:   content,
		Processor: feed.NewProcessor(fetcher, content, images, cfg.MaxConcurrency),
		Cache:     probeCache,
	}, nil
}

// Close releases the probe cache connection.
func (p *Pipeline) Close() error {
	return p.Cache.Close()
}

func newProbeCache(cfg *config.Config) (cache.ProbeCache, error) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("REDIS_URL not set, using in-memory probe cache")
		return cache.NewMemoryCache(cfg.RedisPrefix), nil
	}
	client, err := cache.NewRedisClient(cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	return client, nil
}

func newSink(ctx context.Context, cfg *config.Config) (storage.ImageSink, error) {
	if !cfg.MediaLibraryEnabled {
		return storage.NewLocalDiskSink(cfg.ImageStoragePath, cfg.ImagePublicURL)
	}

	opts := storage.MediaOptions{
		Bucket:     cfg.MediaDisk,
		Collection: cfg.MediaCollection,
		Endpoint:   cfg.R2Endpoint,
		Region:     cfg.R2Region,
		AccessKey:  cfg.R2AccessKey,
		SecretKey:  cfg.R2SecretKey,
		PublicURL:  cfg.R2PublicURL,
	}
	client, err := storage.NewS3Client(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("bucket", opts.Bucket).
		Str("collection", opts.Collection).
		Msg("Storing images in external media library")
	return storage.NewExternalMediaSink(client, opts), nil
}
