package netcmp

import (
	"context"
	"fmt"

	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/matrix"
	"github.com/hupe1980/netcmp/network"
)

// properties holds the whole-graph values compared by the property metrics.
type properties struct {
	degrees       []float64
	averageDegree float64
	scalar        float64
}

func (c *Comparer) runProperty(ctx context.Context, log *Logger, metric distance.Metric, entities []Entity) ([]*matrix.Dense, error) {
	var derive func(*network.Network) properties
	switch metric {
	case distance.MetricDegree:
		derive = func(nw *network.Network) properties {
			return properties{degrees: nw.DegreeHistogram(), averageDegree: nw.AverageDegree()}
		}
	case distance.MetricClustering:
		derive = func(nw *network.Network) properties {
			return properties{scalar: nw.AverageClustering()}
		}
	case distance.MetricDiameter:
		derive = func(nw *network.Network) properties {
			return properties{scalar: float64(nw.Diameter())}
		}
	default:
		return nil, fmt.Errorf("%s is not a network property metric", metric)
	}

	props, err := perEntity(ctx, c, log, "properties", entities, func(ctx context.Context, e Entity) (properties, error) {
		nw, err := c.readNetwork(ctx, e)
		if err != nil {
			return properties{}, err
		}
		return derive(nw), nil
	})
	if err != nil {
		return nil, err
	}

	names := entityNames(entities)
	if metric == distance.MetricDegree {
		return pairwise(ctx, c, log, "degree", names, props, 2, func(_ context.Context, a, b properties) ([]float64, error) {
			return []float64{
				distance.DegreeDistribution(a.degrees, b.degrees),
				distance.Absolute(a.averageDegree, b.averageDegree),
			}, nil
		})
	}
	return pairwise(ctx, c, log, metric.String(), names, props, 1, func(_ context.Context, a, b properties) ([]float64, error) {
		return []float64{distance.Absolute(a.scalar, b.scalar)}, nil
	})
}
