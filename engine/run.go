package engine

import (
	"context"
	"errors"
	"runtime/debug"

	"github.com/bits-and-blooms/bitset"
)

// Func computes the result for one item.
type Func[In, Out any] func(ctx context.Context, item In) (Out, error)

// Result is the outcome of one item, tagged with the item's index.
type Result[Out any] struct {
	Index    int
	Value    Out
	Err      error
	Attempts int
}

// Config controls a batch execution.
type Config struct {
	// Workers is the pool size. Non-positive values use GOMAXPROCS.
	Workers int

	// Retries is the number of additional attempts for a failing item.
	Retries int

	// FailFast cancels the remaining items after the first final failure.
	FailFast bool

	// Progress, if set, is called from the consuming goroutine after each
	// result with the number of results received so far.
	Progress func(done, total int)
}

// Run computes fn for every item on a pool of cfg.Workers goroutines and
// passes each successful result to sink in completion order.
//
// sink is only ever called from the goroutine that called Run. If sink
// returns an error the batch is cancelled and that error is returned.
// Otherwise Run returns nil when every item succeeded, the context error when
// ctx was cancelled, or a *BatchError describing the failed items.
func Run[In, Out any](ctx context.Context, cfg Config, items []In, fn Func[In, Out], sink func(Result[Out]) error) error {
	total := len(items)
	if total == 0 {
		return ctx.Err()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(cfg.Workers)
	results := make(chan Result[Out], pool.Workers()*2)

	go func() {
		defer close(results)
		defer pool.Close()

		for i := range items {
			if err := pool.Submit(runCtx, func() {
				results <- execute(runCtx, cfg.Retries, i, items[i], fn)
			}); err != nil {
				return
			}
		}
	}()

	seen := bitset.New(uint(total))
	batch := &BatchError{Total: total}
	var sinkErr error
	done := 0

	for res := range results {
		if seen.Test(uint(res.Index)) {
			batch.Duplicates++
			continue
		}
		seen.Set(uint(res.Index))
		done++

		switch {
		case res.Err != nil:
			batch.Failed = append(batch.Failed, ItemError{Index: res.Index, Attempts: res.Attempts, Err: res.Err})
			if cfg.FailFast {
				cancel()
			}
		case sinkErr == nil:
			if err := sink(res); err != nil {
				sinkErr = err
				cancel()
			}
		}

		if cfg.Progress != nil {
			cfg.Progress(done, total)
		}
	}

	if sinkErr != nil {
		return sinkErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if missing := total - int(seen.Count()); missing > 0 {
		batch.Missing = make([]int, 0, missing)
		for i := 0; i < total; i++ {
			if !seen.Test(uint(i)) {
				batch.Missing = append(batch.Missing, i)
			}
		}
	}
	if len(batch.Failed) > 0 || len(batch.Missing) > 0 || batch.Duplicates > 0 {
		return batch
	}
	return nil
}

// Map runs fn over items and returns the values in item order.
func Map[In, Out any](ctx context.Context, cfg Config, items []In, fn Func[In, Out]) ([]Out, error) {
	out := make([]Out, len(items))
	err := Run(ctx, cfg, items, fn, func(r Result[Out]) error {
		out[r.Index] = r.Value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func execute[In, Out any](ctx context.Context, retries, index int, item In, fn Func[In, Out]) Result[Out] {
	res := Result[Out]{Index: index}
	for attempt := 0; attempt <= retries; attempt++ {
		if err := ctx.Err(); err != nil {
			if res.Err == nil {
				res.Err = err
			}
			break
		}
		res.Attempts++
		res.Value, res.Err = call(ctx, item, fn)
		if res.Err == nil || errors.Is(res.Err, context.Canceled) {
			break
		}
	}
	return res
}

func call[In, Out any](ctx context.Context, item In, fn Func[In, Out]) (out Out, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn(ctx, item)
}
