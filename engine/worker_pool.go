package engine

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs submitted closures on a fixed set of goroutines fed by a
// bounded channel.
type WorkerPool struct {
	workers   int
	tasks     chan func()
	stopping  chan struct{}
	wg        sync.WaitGroup
	closed    atomic.Bool
	completed atomic.Int64
	submitMu  sync.RWMutex
}

// NewWorkerPool starts a pool of workers goroutines.
// A non-positive count defaults to runtime.GOMAXPROCS(0).
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	wp := &WorkerPool{
		workers:  workers,
		tasks:    make(chan func(), workers*2),
		stopping: make(chan struct{}),
	}

	wp.wg.Add(workers)
	for range workers {
		go wp.loop()
	}
	return wp
}

// Workers returns the number of goroutines in the pool.
func (wp *WorkerPool) Workers() int { return wp.workers }

// Completed returns the number of tasks that have finished running.
func (wp *WorkerPool) Completed() int64 { return wp.completed.Load() }

func (wp *WorkerPool) loop() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		task()
		wp.completed.Add(1)
	}
}

// Submit enqueues task, blocking while the queue is full.
//
// It returns ErrPoolClosed once Close has been called and the context error
// if ctx is done before the task could be enqueued.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	wp.submitMu.RLock()
	defer wp.submitMu.RUnlock()

	if wp.closed.Load() {
		return ErrPoolClosed
	}

	select {
	case wp.tasks <- task:
		return nil
	case <-wp.stopping:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops intake, lets the workers finish every queued task and waits
// for them to exit. It is idempotent.
func (wp *WorkerPool) Close() {
	if !wp.closed.CompareAndSwap(false, true) {
		return
	}

	// Unblock pending submitters before taking the write lock.
	close(wp.stopping)

	wp.submitMu.Lock()
	close(wp.tasks)
	wp.submitMu.Unlock()

	wp.wg.Wait()
}
