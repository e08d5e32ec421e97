package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/climate-atlas/internal/domain"
)

// warmConcurrency caps parallel month fetches against the data host.
const warmConcurrency = 4

// WarmAll prefetches every monthly dataset into the cache. onDone, if set,
// is called once per month as it settles. Months that fail stay uncached;
// the first error is returned after all fetches settle.
func (c *MonthCache) WarmAll(ctx context.Context, onDone func(key domain.MonthKey, err error)) error {
	var g errgroup.Group
	g.SetLimit(warmConcurrency)

	for _, key := range domain.MonthKeys {
		key := key
		g.Go(func() error {
			_, err := c.GetOrFetch(ctx, key)
			if onDone != nil {
				onDone(key, err)
			}
			return err
		})
	}
	return g.Wait()
}
