package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	rc := NewController(Config{MemoryLimitBytes: 100})
	ctx := context.Background()

	require.NoError(t, rc.AcquireMemory(ctx, 60))
	assert.Equal(t, int64(60), rc.MemoryUsage())
	assert.Equal(t, int64(100), rc.MemoryLimit())

	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rc.AcquireMemory(blocked, 50), context.DeadlineExceeded)

	rc.ReleaseMemory(60)
	assert.Equal(t, int64(0), rc.MemoryUsage())
	require.NoError(t, rc.AcquireMemory(ctx, 50))
	rc.ReleaseMemory(50)
}

func TestController_MemoryClamp(t *testing.T) {
	rc := NewController(Config{MemoryLimitBytes: 100})
	ctx := context.Background()

	require.NoError(t, rc.AcquireMemory(ctx, 1000))
	assert.Equal(t, int64(100), rc.MemoryUsage())
	rc.ReleaseMemory(1000)
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	rc := NewController(Config{})
	require.NoError(t, rc.AcquireMemory(context.Background(), 1<<40))
	assert.Equal(t, int64(1<<40), rc.MemoryUsage())
	rc.ReleaseMemory(1 << 40)
}

func TestController_Loads(t *testing.T) {
	rc := NewController(Config{MaxConcurrentLoads: 2})
	ctx := context.Background()

	var active, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := rc.Load(ctx, 10, func() error {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				active.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestController_LoadPropagatesError(t *testing.T) {
	rc := NewController(Config{MaxConcurrentLoads: 1, MemoryLimitBytes: 10})
	err := rc.Load(context.Background(), 5, func() error { return io.ErrUnexpectedEOF })
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestController_IO(t *testing.T) {
	rc := NewController(Config{IOLimitBytesPerSec: 1000})

	// Larger than the bucket is split rather than rejected.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, rc.AcquireIO(ctx, 1500))

	cancelled, cancel2 := context.WithCancel(context.Background())
	cancel2()
	assert.Error(t, rc.AcquireIO(cancelled, 1000))
}

func TestController_NilSafe(t *testing.T) {
	var rc *Controller
	ctx := context.Background()

	assert.NoError(t, rc.AcquireMemory(ctx, 10))
	rc.ReleaseMemory(10)
	assert.Equal(t, int64(0), rc.MemoryUsage())
	assert.Equal(t, int64(0), rc.MemoryLimit())
	assert.NoError(t, rc.AcquireLoad(ctx))
	rc.ReleaseLoad()
	assert.NoError(t, rc.AcquireIO(ctx, 1<<30))
	assert.NoError(t, rc.Load(ctx, 10, func() error { return nil }))
}

func TestRateLimitedReader(t *testing.T) {
	rc := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	r := NewRateLimitedReader(context.Background(), strings.NewReader("hello world"), rc)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
}

func TestRateLimitedReader_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRateLimitedReader(ctx, bytes.NewReader([]byte("data")), nil)
	_, err := r.Read(make([]byte, 4))
	assert.ErrorIs(t, err, context.Canceled)
}
