package resource

import (
	"context"
	"io"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits. Zero values disable the respective limit.
type Config struct {
	// MemoryLimitBytes is the hard limit for bytes reserved by in-flight loads.
	MemoryLimitBytes int64

	// MaxConcurrentLoads is the maximum number of inputs read at once.
	MaxConcurrentLoads int64

	// IOLimitBytesPerSec is the maximum read throughput.
	IOLimitBytesPerSec int64
}

// Controller enforces a Config.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	loadSem *semaphore.Weighted // nil if unlimited

	ioLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.MaxConcurrentLoads > 0 {
		c.loadSem = semaphore.NewWeighted(cfg.MaxConcurrentLoads)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// clamp caps a reservation at the memory limit so that a single input larger
// than the limit still runs, alone.
func (c *Controller) clamp(bytes int64) int64 {
	if c.cfg.MemoryLimitBytes > 0 && bytes > c.cfg.MemoryLimitBytes {
		return c.cfg.MemoryLimitBytes
	}
	return bytes
}

// AcquireMemory reserves bytes, blocking until they are available or ctx is
// done. Requests above the limit are clamped to the limit.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	bytes = c.clamp(bytes)

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}
	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases a reservation made by AcquireMemory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	bytes = c.clamp(bytes)

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the currently reserved bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit (0 = unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireLoad reserves a load slot, blocking while all slots are busy.
func (c *Controller) AcquireLoad(ctx context.Context) error {
	if c == nil || c.loadSem == nil {
		return nil
	}
	return c.loadSem.Acquire(ctx, 1)
}

// ReleaseLoad releases a load slot.
func (c *Controller) ReleaseLoad() {
	if c == nil || c.loadSem == nil {
		return
	}
	c.loadSem.Release(1)
}

// AcquireIO waits until the IO limit allows bytes. Requests larger than the
// bucket are split into bucket-sized waits.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// Load runs fn holding a load slot and a memory reservation of size bytes.
func (c *Controller) Load(ctx context.Context, size int64, fn func() error) error {
	if err := c.AcquireLoad(ctx); err != nil {
		return err
	}
	defer c.ReleaseLoad()

	if err := c.AcquireMemory(ctx, size); err != nil {
		return err
	}
	defer c.ReleaseMemory(size)

	return fn()
}

// RateLimitedReader wraps an io.Reader with the controller's IO limit.
type RateLimitedReader struct {
	ctx context.Context
	r   io.Reader
	rc  *Controller
}

// NewRateLimitedReader creates a new RateLimitedReader.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	return &RateLimitedReader{ctx: ctx, r: r, rc: rc}
}

// Read reads from the underlying reader and then charges the bytes read.
func (r *RateLimitedReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := r.r.Read(p)
	if n > 0 {
		if werr := r.rc.AcquireIO(r.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}
