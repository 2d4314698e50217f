package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	inner Provider
	calls int
}

func (c *countingProvider) FetchQuote(ctx context.Context, ticker string) (*Quote, error) {
	c.calls++
	return c.inner.FetchQuote(ctx, ticker)
}

func (c *countingProvider) FetchMonthlyCloses(ctx context.Context, ticker string, years int) ([]float64, error) {
	return c.inner.FetchMonthlyCloses(ctx, ticker, years)
}

func TestCachedProviderServesFromCache(t *testing.T) {
	counter := &countingProvider{inner: NewStaticProvider()}
	cached := NewCachedProvider(counter, time.Hour)

	q1, err := cached.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	q2, err := cached.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, q1.Price, q2.Price)
	assert.Equal(t, 1, counter.calls)
}

func TestCachedProviderStaleFallback(t *testing.T) {
	counter := &countingProvider{inner: NewStaticProvider()}
	cached := NewCachedProvider(counter, time.Hour)

	failed := cached.Refresh(context.Background(), []string{"AAPL", "NOPE"})
	assert.Equal(t, []string{"NOPE"}, failed)

	// Swap in a failing inner provider: the cached AAPL quote survives even
	// though the TTL forces a refetch attempt.
	cached.inner = failingProvider{}
	cached.ttl = 0

	q, err := cached.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, q.Price.IsPositive())

	_, err = cached.FetchQuote(context.Background(), "NOPE")
	assert.Error(t, err)
}
