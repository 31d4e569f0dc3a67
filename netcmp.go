package netcmp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/netcmp/blobstore"
	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/matrix"
)

// Report summarizes a completed run.
type Report struct {
	Metric   distance.Metric
	Entities []string
	Outputs  []string
	Duration time.Duration
}

// Comparer runs network comparisons over the entities of one store.
// A Comparer is safe for sequential reuse; concurrent runs on the same store
// write the same output names.
type Comparer struct {
	store blobstore.Store
	opts  options
}

// New creates a Comparer reading its inputs from store.
func New(store blobstore.Store, optFns ...Option) (*Comparer, error) {
	if store == nil {
		return nil, errors.New("netcmp: store is nil")
	}
	o := applyOptions(optFns)
	if o.workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, o.workers)
	}
	if o.retries < 0 {
		o.retries = 0
	}
	if o.outputStore == nil {
		o.outputStore = store
	}
	return &Comparer{store: store, opts: o}, nil
}

// Workers returns the worker pool size.
func (c *Comparer) Workers() int { return c.opts.workers }

// OutputNames returns the matrix files written for metric, in write order.
func OutputNames(metric distance.Metric) []string {
	switch metric {
	case distance.MetricGCD11, distance.MetricGCD15, distance.MetricGCD58, distance.MetricGCD73:
		return []string{metric.String() + ".txt"}
	case distance.MetricRGF:
		return []string{"rgf.txt"}
	case distance.MetricGDDA:
		return []string{"gdda.txt", "gddg.txt"}
	case distance.MetricDegree:
		return []string{"degree_dists.txt", "av_degree.txt"}
	case distance.MetricClustering:
		return []string{"clust_coef.txt"}
	case distance.MetricDiameter:
		return []string{"diameter.txt"}
	case distance.MetricSpectral:
		return []string{"spectralDist.txt"}
	default:
		return nil
	}
}

// Run computes metric for every pair of entities and writes its output
// matrices. Nothing is written unless every stage succeeded.
func (c *Comparer) Run(ctx context.Context, metric distance.Metric) (report *Report, err error) {
	outputs := OutputNames(metric)
	if outputs == nil {
		return nil, &distance.ErrUnknownMetric{Name: metric.String()}
	}

	start := time.Now()
	log := c.opts.logger.WithMetric(metric)

	var entities []Entity
	defer func() {
		d := time.Since(start)
		log.LogRun(ctx, len(entities), d, err)
		c.opts.metricsCollector.RecordRun(len(entities), d, err)
	}()

	entities, err = c.Discover(ctx, metric)
	if err != nil {
		return nil, err
	}

	var mats []*matrix.Dense
	switch {
	case metric.IsGCD():
		mats, err = c.runGCD(ctx, log, metric, entities)
	case metric == distance.MetricRGF:
		mats, err = c.runRGF(ctx, log, entities)
	case metric == distance.MetricGDDA:
		mats, err = c.runGDDA(ctx, log, entities)
	case metric == distance.MetricSpectral:
		mats, err = c.runSpectral(ctx, log, entities)
	default:
		mats, err = c.runProperty(ctx, log, metric, entities)
	}
	if err != nil {
		return nil, err
	}

	if err := c.write(ctx, log, outputs, mats); err != nil {
		return nil, err
	}

	return &Report{
		Metric:   metric,
		Entities: entityNames(entities),
		Outputs:  outputs,
		Duration: time.Since(start),
	}, nil
}

// write stores every matrix under its output name concurrently.
func (c *Comparer) write(ctx context.Context, log *Logger, names []string, mats []*matrix.Dense) error {
	if len(names) != len(mats) {
		return fmt.Errorf("write: %d outputs for %d matrices", len(names), len(mats))
	}
	for i, m := range mats {
		if !m.Complete() {
			return fmt.Errorf("write %s: %d cells unset", names[i], len(m.Missing()))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range mats {
		name := names[i]
		g.Go(func() error {
			var buf bytes.Buffer
			if _, err := m.WriteTo(&buf); err != nil {
				log.LogOutput(gctx, name, err)
				return fmt.Errorf("write %s: %w", name, err)
			}
			err := c.opts.outputStore.Put(gctx, name, buf.Bytes())
			log.LogOutput(gctx, name, err)
			if err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
