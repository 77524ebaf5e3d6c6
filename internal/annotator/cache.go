package annotator

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"paynlp/internal/metrics"
	"paynlp/internal/port"
)

// CachedAnnotator memoizes successful annotations by exact input text.
// Cached sentences are shared between callers and must not be mutated.
type CachedAnnotator struct {
	inner port.Annotator
	cache *cache.Cache
}

// NewCachedAnnotator wraps inner with a TTL cache.
func NewCachedAnnotator(inner port.Annotator, ttl time.Duration) *CachedAnnotator {
	return &CachedAnnotator{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedAnnotator) Name() string {
	return c.inner.Name()
}

func (c *CachedAnnotator) Annotate(ctx context.Context, text string) ([]port.Sentence, error) {
	if v, ok := c.cache.Get(text); ok {
		metrics.AnnotationCache.WithLabelValues(metrics.CacheHit).Inc()
		return v.([]port.Sentence), nil
	}
	metrics.AnnotationCache.WithLabelValues(metrics.CacheMiss).Inc()

	sentences, err := c.inner.Annotate(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(text, sentences)
	return sentences, nil
}

// Len returns the number of cached entries, including expired ones not yet evicted.
func (c *CachedAnnotator) Len() int {
	return c.cache.ItemCount()
}
