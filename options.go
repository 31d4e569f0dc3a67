package netcmp

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/hupe1980/netcmp/blobstore"
	"github.com/hupe1980/netcmp/codec"
	"github.com/hupe1980/netcmp/internal/distcache"
	"github.com/hupe1980/netcmp/internal/resource"
)

const (
	defaultEntityProgress = 100
	defaultPairProgress   = 1000
)

type options struct {
	workers          int
	retries          int
	failFast         bool
	outputStore      blobstore.Store
	cacheCodec       codec.Codec
	cacheCapacity    int
	resources        *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
	entityProgress   int
	pairProgress     int
}

// Option configures a Comparer.
type Option func(*options)

// WithWorkers sets the worker pool size used by every stage.
// Defaults to GOMAXPROCS. New rejects values below 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRetries sets how many times a failing entity or pair is retried.
func WithRetries(n int) Option {
	return func(o *options) {
		o.retries = n
	}
}

// WithFailFast cancels a stage at its first final item failure instead of
// finishing the remaining items to report every failure.
func WithFailFast(enabled bool) Option {
	return func(o *options) {
		o.failFast = enabled
	}
}

// WithOutputStore writes the distance matrices to s instead of the input store.
func WithOutputStore(s blobstore.Store) Option {
	return func(o *options) {
		o.outputStore = s
	}
}

// WithCacheCodec configures the codec of the GDD distribution cache.
//
// If nil is passed, codec.Default is used.
func WithCacheCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.cacheCodec = c
	}
}

// WithCacheCapacity bounds the number of decoded distributions kept in memory.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.cacheCapacity = n
	}
}

// WithResources gates entity loading through rc.
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   1 << 30,
//	    IOLimitBytesPerSec: 100 << 20,
//	})
//	cmp, _ := netcmp.New(store, netcmp.WithResources(rc))
func WithResources(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithProgressInterval sets how often progress is logged, in entities and
// pairs. Zero disables the respective progress log.
func WithProgressInterval(entities, pairs int) Option {
	return func(o *options) {
		o.entityProgress = entities
		o.pairProgress = pairs
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &netcmp.BasicMetricsCollector{}
//	cmp, _ := netcmp.New(store, netcmp.WithMetricsCollector(metrics))
//	// ... cmp.Run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Pairs: %d, Avg latency: %dns\n", stats.PairCount, stats.PairAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger on stderr with the specified level and sets it.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(os.Stderr, level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		workers:          runtime.GOMAXPROCS(0),
		cacheCodec:       codec.Default,
		cacheCapacity:    distcache.DefaultCapacity,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		entityProgress:   defaultEntityProgress,
		pairProgress:     defaultPairProgress,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
