// Package engine runs per-item computations on a fixed pool of goroutines.
//
// # Execution Model
//
// Run submits every item of a batch to a WorkerPool of Config.Workers
// goroutines. Each worker computes one item at a time and publishes a Result
// tagged with the item's index on a result channel. The calling goroutine is
// the single consumer: it receives results in completion order, tracks which
// indices have arrived and hands every successful value to a sink.
//
//	err := engine.Run(ctx, engine.Config{Workers: 8}, pairs,
//	    func(ctx context.Context, p engine.Pair) (float64, error) {
//	        return compare(p.I, p.J)
//	    },
//	    func(r engine.Result[float64]) error {
//	        p := pairs[r.Index]
//	        return m.Set(p.I, p.J, r.Value)
//	    })
//
// # Failure Handling
//
// Errors and panics never drop an item silently. A failing item is retried up
// to Config.Retries times and then reported as an ItemError; Run returns a
// *BatchError listing every failed index once all results are in. With
// Config.FailFast the first failure cancels the remaining work.
//
// # Shutdown
//
// Shutdown is cooperative. Closing the pool stops intake, lets workers drain
// the queued work and waits for them to exit. Cancelling the context makes
// queued items finish immediately with the context error.
package engine
