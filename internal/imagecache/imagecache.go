package imagecache

import (
	"context"
	"net/url"
	"strings"

	"price-catalog/internal/redisclient"
	"price-catalog/internal/util"

	"go.uber.org/zap"
)

// Cache maps barcodes to stable CDN image URLs so clients are not coupled to
// the provider's hosting. Enrichment is best-effort: any failure hands back
// the source URL unchanged.
type Cache struct {
	redis        *redisclient.Client
	fetchBaseURL string
	logger       *zap.Logger
}

// NewCache creates an image cache. An empty fetchBaseURL disables CDN
// rewriting; CachedURL then passes source URLs through.
func NewCache(redis *redisclient.Client, fetchBaseURL string) *Cache {
	return &Cache{
		redis:        redis,
		fetchBaseURL: strings.TrimRight(fetchBaseURL, "/"),
		logger:       util.GetLogger(),
	}
}

// CachedURL returns the stable image URL for a barcode, building and caching
// one from the CDN fetch base on a miss. Never fails: redis or config
// problems degrade to the source URL.
func (c *Cache) CachedURL(ctx context.Context, barcode, sourceURL string) string {
	if sourceURL == "" || c.fetchBaseURL == "" {
		return sourceURL
	}

	if cached, err := c.redis.GetImageURL(ctx, barcode); err == nil && cached != "" {
		return cached
	} else if err != nil {
		c.logger.Warn("Image cache read failed",
			zap.String("barcode", barcode),
			zap.Error(err))
		return sourceURL
	}

	stable := c.FetchURL(sourceURL)
	if err := c.redis.SetImageURL(ctx, barcode, stable); err != nil {
		c.logger.Warn("Image cache write failed",
			zap.String("barcode", barcode),
			zap.Error(err))
		return sourceURL
	}
	return stable
}

// FetchURL builds the CDN fetch URL for a source image
func (c *Cache) FetchURL(sourceURL string) string {
	return c.fetchBaseURL + "/image/fetch/" + url.QueryEscape(sourceURL)
}
