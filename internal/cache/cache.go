package cache

import (
	"context"
	"time"

	"github.com/bilgisen/feedharvest/internal/utils"
)

// ProbeCache remembers image widths so repeated harvests of the same page do
// not download every image again.
type ProbeCache interface {
	GetWidth(ctx context.Context, imageURL string) (int, bool, error)
	SetWidth(ctx context.Context, imageURL string, width int, ttl time.Duration) error
	// Clear drops every cached width.
	Clear(ctx context.Context) error
	Close() error
}

func widthKey(prefix, imageURL string) string {
	return prefix + "width:" + utils.URLKey(imageURL)
}

var (
	_ ProbeCache = (*RedisClient)(nil)
	_ ProbeCache = (*MemoryCache)(nil)
)
