package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bilgisen/feedharvest/internal/cache"
	"github.com/bilgisen/feedharvest/internal/config"
	"github.com/bilgisen/feedharvest/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		HTTPTimeout:           time.Second,
		UserAgent:             config.DefaultUserAgent,
		MaxConcurrency:        1,
		RedisPrefix:           "test:",
		ImageStoragePath:      filepath.Join(t.TempDir(), "images"),
		MinImageWidth:         300,
		DomainSelectorPolicy:  "union",
		DefaultSelectorPolicy: "first",
		DefaultSelector:       config.DefaultSelector,
		DomainSelectors:       config.DefaultDomainSelectors,
	}
}

func TestBuild_LocalDefaults(t *testing.T) {
	cfg := testConfig(t)

	p, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer p.Close()

	assert.IsType(t, &cache.MemoryCache{}, p.Cache)
	assert.NotNil(t, p.Processor)

	info, err := os.Stat(cfg.ImageStoragePath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewSink_ExternalMediaLibrary(t *testing.T) {
	cfg := testConfig(t)
	cfg.MediaLibraryEnabled = true
	cfg.MediaDisk = "media"
	cfg.R2Endpoint = "https://account.r2.cloudflarestorage.com"
	cfg.R2Region = "auto"
	cfg.R2AccessKey = "key"
	cfg.R2SecretKey = "secret"

	sink, err := newSink(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &storage.ExternalMediaSink{}, sink)
}

func TestBuild_BadRedisURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisURL = "not-a-redis-url"

	_, err := Build(context.Background(), cfg)
	assert.Error(t, err)
}
