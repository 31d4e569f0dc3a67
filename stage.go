package netcmp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/netcmp/blobstore"
	"github.com/hupe1980/netcmp/engine"
	"github.com/hupe1980/netcmp/internal/resource"
	"github.com/hupe1980/netcmp/matrix"
	"github.com/hupe1980/netcmp/network"
	"github.com/hupe1980/netcmp/signature"
)

func (c *Comparer) engineConfig(ctx context.Context, log *Logger, stage string, every int) engine.Config {
	cfg := engine.Config{
		Workers:  c.opts.workers,
		Retries:  c.opts.retries,
		FailFast: c.opts.failFast,
	}
	if every > 0 {
		cfg.Progress = func(done, total int) {
			if done%every == 0 || done == total {
				log.LogProgress(ctx, stage, done, total)
			}
		}
	}
	return cfg
}

// stageError logs every failed item of a stage and wraps err.
func (c *Comparer) stageError(ctx context.Context, log *Logger, stage string, err error, item func(int) string) error {
	var batch *engine.BatchError
	if errors.As(err, &batch) {
		for _, f := range batch.Failed {
			log.LogItemFailure(ctx, stage, item(f.Index), f.Attempts, f.Err)
		}
		for _, i := range batch.Missing {
			log.LogItemFailure(ctx, stage, item(i), 0, engine.ErrIncomplete)
		}
	}
	return &StageError{Stage: stage, cause: err}
}

// perEntity computes one value per entity on the worker pool.
func perEntity[T any](ctx context.Context, c *Comparer, log *Logger, stage string, entities []Entity, fn func(context.Context, Entity) (T, error)) ([]T, error) {
	log.LogStage(ctx, stage, len(entities))

	timed := func(ctx context.Context, e Entity) (T, error) {
		start := time.Now()
		v, err := fn(ctx, e)
		c.opts.metricsCollector.RecordEntity(time.Since(start), err)
		return v, err
	}

	values, err := engine.Map(ctx, c.engineConfig(ctx, log, stage, c.opts.entityProgress), entities, timed)
	if err != nil {
		return nil, c.stageError(ctx, log, stage, err, func(i int) string { return entities[i].Name })
	}
	return values, nil
}

// pairwise computes width distances for every unordered pair of values and
// assembles them into width matrices indexed by names.
func pairwise[T any](ctx context.Context, c *Comparer, log *Logger, stage string, names []string, values []T, width int, fn func(ctx context.Context, a, b T) ([]float64, error)) ([]*matrix.Dense, error) {
	mats := make([]*matrix.Dense, width)
	for k := range mats {
		m, err := matrix.New(names)
		if err != nil {
			return nil, err
		}
		mats[k] = m
	}

	pairs := engine.Pairs(len(values))
	log.LogStage(ctx, stage, len(pairs))

	compute := func(ctx context.Context, p engine.Pair) ([]float64, error) {
		start := time.Now()
		d, err := fn(ctx, values[p.I], values[p.J])
		if err == nil && len(d) != width {
			err = fmt.Errorf("got %d distances, want %d", len(d), width)
		}
		c.opts.metricsCollector.RecordPair(time.Since(start), err)
		return d, err
	}

	err := engine.Run(ctx, c.engineConfig(ctx, log, stage, c.opts.pairProgress), pairs, compute, func(r engine.Result[[]float64]) error {
		p := pairs[r.Index]
		for k, m := range mats {
			if err := m.Set(p.I, p.J, r.Value[k]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, c.stageError(ctx, log, stage, err, func(i int) string {
			return names[pairs[i].I] + " ~ " + names[pairs[i].J]
		})
	}
	return mats, nil
}

// load streams key through the resource controller into parse.
func (c *Comparer) load(ctx context.Context, key string, parse func(io.Reader) error) error {
	rc := c.opts.resources
	return blobstore.Stream(ctx, c.store, key, func(r io.Reader, size int64) error {
		return rc.Load(ctx, size, func() error {
			return parse(resource.NewRateLimitedReader(ctx, r, rc))
		})
	})
}

func (c *Comparer) readSignature(ctx context.Context, e Entity) (signature.Signature, error) {
	var sig signature.Signature
	err := c.load(ctx, e.SignatureKey, func(r io.Reader) error {
		var err error
		sig, err = signature.Read(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", e.SignatureKey, err)
	}
	return sig, nil
}

func (c *Comparer) readNetwork(ctx context.Context, e Entity) (*network.Network, error) {
	var nw *network.Network
	err := c.load(ctx, e.NetworkKey, func(r io.Reader) error {
		var err error
		nw, err = network.ReadLEDA(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", e.NetworkKey, err)
	}
	return nw, nil
}
