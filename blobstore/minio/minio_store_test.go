package minio

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/netcmp/blobstore"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "test-netcmp"

	store, err := NewFromEndpoint(endpoint, "minioadmin", "minioadmin", false, bucket, "test-prefix/")
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "nets/test.ndump2", data))

	blob, err := store.Open(ctx, "nets/test.ndump2")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	rc, err := blob.ReadRange(ctx, 6, 5)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "minio", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "nets/")
	require.NoError(t, err)
	assert.Contains(t, names, "nets/test.ndump2")

	got, err := blobstore.ReadAll(ctx, store, "nets/test.ndump2")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "nets/test.ndump2"))
	_, err = store.Open(ctx, "nets/test.ndump2")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
