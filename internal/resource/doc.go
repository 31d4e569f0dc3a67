// Package resource bounds the resources used while loading per-entity inputs.
//
// A Controller manages three independent limits:
//
//   - Memory: bytes reserved for in-flight loads (weighted semaphore)
//   - Loads: number of inputs read concurrently (weighted semaphore)
//   - IO: read throughput (token bucket)
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   512 << 20,
//	    MaxConcurrentLoads: 4,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	err := rc.Load(ctx, blob.Size(), func() error {
//	    r := resource.NewRateLimitedReader(ctx, body, rc)
//	    sig, err = signature.Read(r)
//	    return err
//	})
//
// All methods are safe for concurrent use and a nil *Controller imposes no
// limits.
package resource
