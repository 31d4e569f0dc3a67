package netcmp

import (
	"context"

	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/matrix"
)

func (c *Comparer) runRGF(ctx context.Context, log *Logger, entities []Entity) ([]*matrix.Dense, error) {
	freqs, err := perEntity(ctx, c, log, "graphlet counts", entities, func(ctx context.Context, e Entity) (distance.GraphletVector, error) {
		sig, err := c.readSignature(ctx, e)
		if err != nil {
			return distance.GraphletVector{}, err
		}
		return distance.RelativeFrequencies(sig), nil
	})
	if err != nil {
		return nil, err
	}

	return pairwise(ctx, c, log, "rgf", entityNames(entities), freqs, 1, func(_ context.Context, a, b distance.GraphletVector) ([]float64, error) {
		return []float64{distance.RGF(a, b)}, nil
	})
}
