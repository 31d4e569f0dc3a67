package netcmp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/netcmp/blobstore"
	"github.com/hupe1980/netcmp/codec"
	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/engine"
	"github.com/hupe1980/netcmp/internal/fs"
	"github.com/hupe1980/netcmp/internal/distcache"
	"github.com/hupe1980/netcmp/internal/resource"
	"github.com/hupe1980/netcmp/matrix"
	"github.com/hupe1980/netcmp/testutil"
)

var (
	triangleEdges = [][2]int{{1, 2}, {2, 3}, {3, 1}}
	pathEdges     = [][2]int{{1, 2}, {2, 3}, {3, 4}}
	starEdges     = [][2]int{{1, 2}, {1, 3}, {1, 4}}
)

func uniformStore(t *testing.T, names ...string) *blobstore.MemoryStore {
	t.Helper()
	store := blobstore.NewMemoryStore()
	entities := make([]testutil.Entity, len(names))
	for i, name := range names {
		entities[i] = testutil.Entity{
			Name:      name,
			Signature: testutil.UniformSignature(5, 2),
			Nodes:     3,
			Edges:     triangleEdges,
		}
	}
	require.NoError(t, testutil.PutEntities(context.Background(), store, entities))
	return store
}

func readMatrix(t *testing.T, store blobstore.Store, name string) *matrix.Dense {
	t.Helper()
	data, err := blobstore.ReadAll(context.Background(), store, name)
	require.NoError(t, err)
	m, err := matrix.Read(bytes.NewReader(data))
	require.NoError(t, err)
	return m
}

func assertUniform(t *testing.T, m *matrix.Dense, want float64) {
	t.Helper()
	require.True(t, m.IsSymmetric())
	for i := 0; i < m.Len(); i++ {
		assert.Equal(t, 0.0, m.At(i, i))
		for j := 0; j < m.Len(); j++ {
			if i != j {
				assert.InDelta(t, want, m.At(i, j), 1e-12, "cell (%d, %d)", i, j)
			}
		}
	}
}

func TestNew_InvalidWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := New(blobstore.NewMemoryStore(), WithWorkers(n))
		assert.ErrorIs(t, err, ErrInvalidWorkers)
	}

	_, err := New(nil)
	assert.Error(t, err)

	cmp, err := New(blobstore.NewMemoryStore(), WithWorkers(3))
	require.NoError(t, err)
	assert.Equal(t, 3, cmp.Workers())
}

func TestRun_IdenticalEntities(t *testing.T) {
	ctx := context.Background()

	for _, metric := range distance.Metrics() {
		t.Run(metric.String(), func(t *testing.T) {
			store := uniformStore(t, "C", "A", "B")
			cmp, err := New(store, WithWorkers(2))
			require.NoError(t, err)

			report, err := cmp.Run(ctx, metric)
			require.NoError(t, err)
			assert.Equal(t, metric, report.Metric)
			assert.Equal(t, []string{"A", "B", "C"}, report.Entities)
			assert.Equal(t, OutputNames(metric), report.Outputs)

			for _, name := range report.Outputs {
				m := readMatrix(t, store, name)
				assert.Equal(t, []string{"A", "B", "C"}, m.Names())
				assertUniform(t, m, 0)
			}

			leftover, err := store.List(ctx, distcache.Root+"/")
			require.NoError(t, err)
			assert.Empty(t, leftover)
		})
	}
}

func TestRun_GCDUniformSignaturesHeader(t *testing.T) {
	store := uniformStore(t, "A", "B", "C")
	cmp, err := New(store, WithWorkers(2))
	require.NoError(t, err)

	_, err = cmp.Run(context.Background(), distance.MetricGCD73)
	require.NoError(t, err)

	data, err := blobstore.ReadAll(context.Background(), store, "gcd73.txt")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "\tA\tB\tC", lines[0])
	assert.Equal(t, "A\t0\t0\t0", lines[1])
}

func TestRun_NetworkProperties(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	sig := testutil.UniformSignature(3, 1)
	require.NoError(t, testutil.PutEntities(ctx, store, []testutil.Entity{
		{Name: "path", Signature: sig, Nodes: 4, Edges: pathEdges},
		{Name: "star", Signature: sig, Nodes: 4, Edges: starEdges},
		{Name: "triangle", Signature: sig, Nodes: 3, Edges: triangleEdges},
	}))

	cmp, err := New(store, WithWorkers(3))
	require.NoError(t, err)

	// path=0, star=1, triangle=2
	t.Run("clustering", func(t *testing.T) {
		_, err := cmp.Run(ctx, distance.MetricClustering)
		require.NoError(t, err)
		m := readMatrix(t, store, "clust_coef.txt")
		assert.InDelta(t, 0.0, m.At(0, 1), 1e-12)
		assert.InDelta(t, 1.0, m.At(0, 2), 1e-12)
		assert.InDelta(t, 1.0, m.At(2, 1), 1e-12)
	})

	t.Run("diameter", func(t *testing.T) {
		_, err := cmp.Run(ctx, distance.MetricDiameter)
		require.NoError(t, err)
		m := readMatrix(t, store, "diameter.txt")
		assert.Equal(t, 1.0, m.At(0, 1))
		assert.Equal(t, 2.0, m.At(0, 2))
		assert.Equal(t, 1.0, m.At(1, 2))
	})

	t.Run("degree", func(t *testing.T) {
		_, err := cmp.Run(ctx, distance.MetricDegree)
		require.NoError(t, err)
		dists := readMatrix(t, store, "degree_dists.txt")
		avg := readMatrix(t, store, "av_degree.txt")

		// path and star share the mean degree 1.5; the triangle has 2.
		assert.InDelta(t, 0.0, avg.At(0, 1), 1e-12)
		assert.InDelta(t, 0.5, avg.At(0, 2), 1e-12)
		assert.Greater(t, dists.At(0, 1), 0.0)
		assert.True(t, dists.IsSymmetric())
	})

	t.Run("spectral", func(t *testing.T) {
		_, err := cmp.Run(ctx, distance.MetricSpectral)
		require.NoError(t, err)
		m := readMatrix(t, store, "spectralDist.txt")
		// star [4,1,1,0] vs triangle [3,3,0]: 1 + 4 + 1 + 0.
		assert.InDelta(t, math.Sqrt(6), m.At(1, 2), 1e-9)
	})
}

func TestRun_GDDACacheCodecs(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)

	var want *matrix.Dense
	for _, name := range codec.Names() {
		t.Run(name, func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			rng.Reset()
			require.NoError(t, testutil.PutEntities(ctx, store, []testutil.Entity{
				{Name: "a", Signature: rng.Signature(20, 4)},
				{Name: "b", Signature: rng.Signature(20, 4)},
				{Name: "c", Signature: rng.Signature(30, 6)},
			}))

			c, _ := codec.ByName(name)
			cmp, err := New(store, WithWorkers(2), WithCacheCodec(c), WithCacheCapacity(1))
			require.NoError(t, err)

			_, err = cmp.Run(ctx, distance.MetricGDDA)
			require.NoError(t, err)

			gdda := readMatrix(t, store, "gdda.txt")
			gddg := readMatrix(t, store, "gddg.txt")
			assert.True(t, gdda.IsSymmetric())
			assert.True(t, gddg.IsSymmetric())
			if want == nil {
				want = gdda
			} else {
				assert.Equal(t, want.String(), gdda.String())
			}

			assert.Equal(t, 5, store.Len(), "three inputs and two outputs")
		})
	}
}

func TestRun_RowOrderInvariance(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(7)
	sig := rng.Signature(25, 5)

	store := blobstore.NewMemoryStore()
	require.NoError(t, testutil.PutEntities(ctx, store, []testutil.Entity{
		{Name: "orig", Signature: sig},
		{Name: "shuffled", Signature: rng.Shuffle(sig)},
	}))

	cmp, err := New(store, WithWorkers(2))
	require.NoError(t, err)
	for _, metric := range []distance.Metric{distance.MetricGCD11, distance.MetricGCD15, distance.MetricRGF} {
		_, err := cmp.Run(ctx, metric)
		require.NoError(t, err)
		m := readMatrix(t, store, OutputNames(metric)[0])
		assert.InDelta(t, 0.0, m.At(0, 1), 1e-9, metric.String())
	}
}

func TestRun_ConfigurationErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("no entities", func(t *testing.T) {
		cmp, err := New(blobstore.NewMemoryStore())
		require.NoError(t, err)
		_, err = cmp.Run(ctx, distance.MetricRGF)
		assert.ErrorIs(t, err, ErrNoEntities)
	})

	t.Run("missing network", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, testutil.PutEntities(ctx, store, []testutil.Entity{
			{Name: "a", Signature: testutil.UniformSignature(2, 1), Nodes: 2},
			{Name: "b", Signature: testutil.UniformSignature(2, 1)},
		}))
		cmp, err := New(store)
		require.NoError(t, err)

		_, err = cmp.Run(ctx, distance.MetricDegree)
		var missing *MissingNetworkError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "b", missing.Entity)
		assert.Equal(t, "b.gw", missing.Key)

		// Signature metrics do not need the network.
		_, err = cmp.Run(ctx, distance.MetricRGF)
		assert.NoError(t, err)
	})

	t.Run("unknown metric", func(t *testing.T) {
		cmp, err := New(uniformStore(t, "a"))
		require.NoError(t, err)
		_, err = cmp.Run(ctx, distance.Metric(99))
		var unknown *distance.ErrUnknownMetric
		assert.True(t, errors.As(err, &unknown))
	})
}

func TestRun_ItemFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := uniformStore(t, "a", "b", "c")
	require.NoError(t, store.Put(ctx, "b.ndump2", []byte("node 1 2 3\n")))

	metrics := &BasicMetricsCollector{}
	cmp, err := New(store, WithWorkers(2), WithRetries(1), WithMetricsCollector(metrics))
	require.NoError(t, err)

	for _, metric := range []distance.Metric{distance.MetricGCD73, distance.MetricGDDA} {
		_, err = cmp.Run(ctx, metric)
		require.Error(t, err)

		var stage *StageError
		require.True(t, errors.As(err, &stage))
		var batch *engine.BatchError
		require.True(t, errors.As(err, &batch))
		require.Len(t, batch.Failed, 1)
		assert.Equal(t, 1, batch.Failed[0].Index)
		assert.Equal(t, 2, batch.Failed[0].Attempts)

		for _, name := range OutputNames(metric) {
			_, err := store.Open(ctx, name)
			assert.ErrorIs(t, err, blobstore.ErrNotFound, name)
		}
	}

	leftover, err := store.List(ctx, distcache.Root+"/")
	require.NoError(t, err)
	assert.Empty(t, leftover, "cache is purged after a failed run")

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.RunCount)
	assert.Equal(t, int64(2), stats.RunErrors)
	assert.Equal(t, int64(4), stats.EntityErrors, "two attempts per run")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmp, err := New(uniformStore(t, "a", "b"))
	require.NoError(t, err)

	_, err = cmp.Run(ctx, distance.MetricRGF)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_OutputStoreAndOptions(t *testing.T) {
	ctx := context.Background()
	in := uniformStore(t, "a", "b", "c", "d")
	out := blobstore.NewMemoryStore()

	var logs bytes.Buffer
	metrics := &BasicMetricsCollector{}
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20, MaxConcurrentLoads: 1, IOLimitBytesPerSec: 1 << 30})

	cmp, err := New(in,
		WithWorkers(4),
		WithOutputStore(out),
		WithResources(rc),
		WithLogger(NewJSONLogger(&logs, slog.LevelInfo)),
		WithMetricsCollector(metrics),
		WithProgressInterval(1, 1),
		WithFailFast(true),
	)
	require.NoError(t, err)

	_, err = cmp.Run(ctx, distance.MetricRGF)
	require.NoError(t, err)

	_, err = in.Open(ctx, "rgf.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assertUniform(t, readMatrix(t, out, "rgf.txt"), 0)

	stats := metrics.GetStats()
	assert.Equal(t, int64(4), stats.EntityCount)
	assert.Equal(t, int64(6), stats.PairCount)
	assert.Equal(t, int64(1), stats.RunCount)
	assert.Equal(t, int64(0), rc.MemoryUsage())

	assert.Contains(t, logs.String(), `"msg":"run completed"`)
	assert.Contains(t, logs.String(), `"msg":"stage progress"`)
	assert.Contains(t, logs.String(), `"metric":"rgf"`)
}

func TestRun_OutputWriteFailure(t *testing.T) {
	ctx := context.Background()
	in := uniformStore(t, "a", "b", "c")

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("gdda.txt", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
	out := blobstore.NewLocalStoreWithFS(t.TempDir(), ffs)

	cmp, err := New(in, WithWorkers(2), WithOutputStore(out))
	require.NoError(t, err)

	_, err = cmp.Run(ctx, distance.MetricGDDA)
	require.ErrorIs(t, err, fs.ErrInjected)

	_, err = out.Open(ctx, "gdda.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	// The distribution cache is purged even though the run failed.
	left, err := in.List(ctx, distcache.Root+"/")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestDiscover(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	for _, name := range []string{"z/b.ndump2", "a.ndump2", "a.gw", "notes.txt", distcache.Root + "/x/old.ndump2"} {
		require.NoError(t, store.Put(ctx, name, []byte("x")))
	}
	cmp, err := New(store)
	require.NoError(t, err)

	entities, err := cmp.Discover(ctx, distance.MetricRGF)
	require.NoError(t, err)
	assert.Equal(t, []Entity{
		{Name: "a", SignatureKey: "a.ndump2", NetworkKey: "a.gw"},
		{Name: "z/b", SignatureKey: "z/b.ndump2", NetworkKey: "z/b.gw"},
	}, entities)
}

func TestOutputNames(t *testing.T) {
	for _, m := range distance.Metrics() {
		assert.NotEmpty(t, OutputNames(m), m.String())
	}
	assert.Equal(t, []string{"gdda.txt", "gddg.txt"}, OutputNames(distance.MetricGDDA))
	assert.Nil(t, OutputNames(distance.Metric(-1)))
}
