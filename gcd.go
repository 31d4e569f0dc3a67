package netcmp

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/matrix"
)

func (c *Comparer) runGCD(ctx context.Context, log *Logger, metric distance.Metric, entities []Entity) ([]*matrix.Dense, error) {
	set := metric.OrbitSet()

	gcms, err := perEntity(ctx, c, log, "correlation", entities, func(ctx context.Context, e Entity) (*mat.SymDense, error) {
		sig, err := c.readSignature(ctx, e)
		if err != nil {
			return nil, err
		}
		return distance.GraphletCorrelation(sig, set), nil
	})
	if err != nil {
		return nil, err
	}

	return pairwise(ctx, c, log, metric.String(), entityNames(entities), gcms, 1, func(_ context.Context, a, b *mat.SymDense) ([]float64, error) {
		d, err := distance.GCD(a, b)
		if err != nil {
			return nil, err
		}
		return []float64{d}, nil
	})
}
