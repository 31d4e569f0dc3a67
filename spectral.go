package netcmp

import (
	"context"

	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/matrix"
)

func (c *Comparer) runSpectral(ctx context.Context, log *Logger, entities []Entity) ([]*matrix.Dense, error) {
	spectra, err := perEntity(ctx, c, log, "spectra", entities, func(ctx context.Context, e Entity) ([]float64, error) {
		nw, err := c.readNetwork(ctx, e)
		if err != nil {
			return nil, err
		}
		return nw.LaplacianSpectrum()
	})
	if err != nil {
		return nil, err
	}

	return pairwise(ctx, c, log, "spectral", entityNames(entities), spectra, 1, func(_ context.Context, a, b []float64) ([]float64, error) {
		return []float64{distance.Spectral(a, b)}, nil
	})
}
