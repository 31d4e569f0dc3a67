package netcmp

import (
	"context"

	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/internal/distcache"
	"github.com/hupe1980/netcmp/matrix"
)

// runGDDA writes every entity's orbit distributions to the run cache, then
// compares pairs from the cache. The cache is purged whatever the outcome.
func (c *Comparer) runGDDA(ctx context.Context, log *Logger, entities []Entity) ([]*matrix.Dense, error) {
	cache, err := distcache.New(c.store, distcache.Options{
		Codec:    c.opts.cacheCodec,
		Capacity: c.opts.cacheCapacity,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		removed, err := cache.Purge(context.WithoutCancel(ctx))
		log.LogPurge(ctx, removed, err)
	}()

	_, err = perEntity(ctx, c, log, "distributions", entities, func(ctx context.Context, e Entity) (struct{}, error) {
		sig, err := c.readSignature(ctx, e)
		if err != nil {
			return struct{}{}, err
		}
		d := distance.OrbitDistributions(sig)
		return struct{}{}, cache.Put(ctx, e.Name, &d)
	})
	if err != nil {
		return nil, err
	}

	return pairwise(ctx, c, log, "gdda", entityNames(entities), entityNames(entities), 2, func(ctx context.Context, a, b string) ([]float64, error) {
		da, err := cache.Get(ctx, a)
		if err != nil {
			return nil, err
		}
		db, err := cache.Get(ctx, b)
		if err != nil {
			return nil, err
		}
		am, gm := distance.GDDA(da, db)
		return []float64{am, gm}, nil
	})
}
