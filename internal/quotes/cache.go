package quotes

import (
	"context"
	"sync"
	"time"
)

// CachedProvider serves quotes from an in-memory cache that a scheduler
// refreshes in the background, falling back to the wrapped provider on a
// miss. FetchMonthlyCloses always goes straight through; history is only
// fetched for projections and those calls are rare.
type CachedProvider struct {
	inner Provider
	ttl   time.Duration

	mu    sync.RWMutex
	cache map[string]cachedQuote
}

type cachedQuote struct {
	quote   *Quote
	fetched time.Time
}

// NewCachedProvider wraps a provider with a quote cache. Entries older than
// ttl are refetched on access.
func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		ttl:   ttl,
		cache: make(map[string]cachedQuote),
	}
}

// FetchQuote returns the cached quote when fresh, otherwise fetches and
// caches. A fetch failure falls back to a stale cached quote if one exists.
func (c *CachedProvider) FetchQuote(ctx context.Context, ticker string) (*Quote, error) {
	c.mu.RLock()
	entry, ok := c.cache[ticker]
	c.mu.RUnlock()
	if ok && time.Since(entry.fetched) < c.ttl {
		return entry.quote, nil
	}

	q, err := c.inner.FetchQuote(ctx, ticker)
	if err != nil {
		if ok {
			return entry.quote, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.cache[ticker] = cachedQuote{quote: q, fetched: time.Now()}
	c.mu.Unlock()
	return q, nil
}

// FetchMonthlyCloses delegates to the wrapped provider.
func (c *CachedProvider) FetchMonthlyCloses(ctx context.Context, ticker string, years int) ([]float64, error) {
	return c.inner.FetchMonthlyCloses(ctx, ticker, years)
}

// Refresh re-fetches the given tickers, replacing cache entries that
// succeed. Returns the tickers that could not be refreshed.
func (c *CachedProvider) Refresh(ctx context.Context, tickers []string) []string {
	var failed []string
	for _, ticker := range tickers {
		q, err := c.inner.FetchQuote(ctx, ticker)
		if err != nil {
			failed = append(failed, ticker)
			continue
		}
		c.mu.Lock()
		c.cache[ticker] = cachedQuote{quote: q, fetched: time.Now()}
		c.mu.Unlock()
	}
	return failed
}
