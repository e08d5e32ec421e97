package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/observability"
)

// MonthFetcher retrieves one monthly climate dataset.
type MonthFetcher interface {
	FetchMonth(ctx context.Context, key domain.MonthKey) (*domain.GridDataset, error)
}

// MonthCache is the session-lifetime cache of monthly datasets. Entries are
// append-only: a key is fetched at most once, never invalidated or evicted.
// Concurrent requests for the same key collapse into a single fetch; a
// failed fetch caches nothing, so the previously displayed month stays
// intact and a later request may try again.
type MonthCache struct {
	inner   MonthFetcher
	clock   clockwork.Clock
	metrics *observability.Metrics

	group singleflight.Group

	mu      sync.Mutex
	entries map[domain.MonthKey]entry
}

type entry struct {
	dataset   *domain.GridDataset
	fetchedAt time.Time
}

// NewMonthCache creates a cache over a month fetcher.
func NewMonthCache(inner MonthFetcher, clock clockwork.Clock, metrics *observability.Metrics) *MonthCache {
	return &MonthCache{
		inner:   inner,
		clock:   clock,
		metrics: metrics,
		entries: make(map[domain.MonthKey]entry),
	}
}

// GetOrFetch returns the cached dataset for a month key, fetching it on
// first request. Hits return synchronously with no network access.
func (c *MonthCache) GetOrFetch(ctx context.Context, key domain.MonthKey) (*domain.GridDataset, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return e.dataset, nil
	}
	c.mu.Unlock()
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(string(key), func() (any, error) {
		start := c.clock.Now()
		ds, err := c.inner.FetchMonth(ctx, key)
		if err != nil {
			c.metrics.DatasetFetches.WithLabelValues("month", "error").Inc()
			return nil, err
		}
		c.metrics.DatasetFetches.WithLabelValues("month", "success").Inc()
		c.metrics.FetchDuration.Observe(c.clock.Since(start).Seconds())

		c.mu.Lock()
		c.entries[key] = entry{dataset: ds, fetchedAt: c.clock.Now()}
		c.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.GridDataset), nil
}

// Cached reports whether a key has already been fetched; a true result means
// GetOrFetch will return without suspension.
func (c *MonthCache) Cached(key domain.MonthKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// FetchedAt returns when a key's dataset was fetched.
func (c *MonthCache) FetchedAt(key domain.MonthKey) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e.fetchedAt, ok
}

// Len returns the number of cached months.
func (c *MonthCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
