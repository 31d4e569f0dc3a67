package distcache

import (
	"context"
	"fmt"
	"path"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/netcmp/blobstore"
	"github.com/hupe1980/netcmp/codec"
	"github.com/hupe1980/netcmp/distance"
)

const (
	// Root is the store directory holding every run's cache blobs.
	Root = ".netcmp"

	// Ext is the file extension of a cached distribution blob.
	Ext = ".gdd"

	// DefaultCapacity is the default number of decoded entities kept in memory.
	DefaultCapacity = 64

	purgeConcurrency = 8
)

// Options configures a Cache.
type Options struct {
	// Codec compresses blobs. Defaults to codec.Default.
	Codec codec.Codec
	// Capacity bounds the decoded LRU. Defaults to DefaultCapacity.
	Capacity int
	// RunID scopes the blobs of one run. A random UUID is used when empty.
	RunID string
}

// Cache stores distributions in a blobstore.Store.
type Cache struct {
	store  blobstore.Store
	codec  codec.Codec
	prefix string
	lru    *lru.Cache[string, *distance.Distributions]

	hits   atomic.Int64
	misses atomic.Int64
}

// New returns a cache writing into store.
func New(store blobstore.Store, opts Options) (*Cache, error) {
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	l, err := lru.New[string, *distance.Distributions](opts.Capacity)
	if err != nil {
		return nil, fmt.Errorf("distcache: %w", err)
	}

	return &Cache{
		store:  store,
		codec:  opts.Codec,
		prefix: path.Join(Root, opts.RunID) + "/",
		lru:    l,
	}, nil
}

// Prefix returns the store prefix of this run's blobs.
func (c *Cache) Prefix() string { return c.prefix }

// Key returns the blob name for entity.
func (c *Cache) Key(entity string) string {
	return c.prefix + entity + Ext
}

// Put encodes, compresses and stores d for entity.
func (c *Cache) Put(ctx context.Context, entity string, d *distance.Distributions) error {
	block, err := c.codec.Compress(Marshal(d))
	if err != nil {
		return fmt.Errorf("distcache: compress %s: %w", entity, err)
	}
	if err := c.store.Put(ctx, c.Key(entity), block); err != nil {
		return fmt.Errorf("distcache: put %s: %w", entity, err)
	}
	c.lru.Add(entity, d)
	return nil
}

// Get returns the distributions stored for entity.
// The result is shared and must not be modified.
func (c *Cache) Get(ctx context.Context, entity string) (*distance.Distributions, error) {
	if d, ok := c.lru.Get(entity); ok {
		c.hits.Add(1)
		return d, nil
	}
	c.misses.Add(1)

	block, err := blobstore.ReadAll(ctx, c.store, c.Key(entity))
	if err != nil {
		return nil, fmt.Errorf("distcache: get %s: %w", entity, err)
	}
	data, err := c.codec.Decompress(block)
	if err != nil {
		return nil, fmt.Errorf("distcache: decompress %s: %w", entity, err)
	}
	d, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("distcache: decode %s: %w", entity, err)
	}

	c.lru.Add(entity, d)
	return d, nil
}

// Stats returns the LRU hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Purge deletes every blob under the run prefix and empties the LRU.
// It returns the number of deleted blobs.
func (c *Cache) Purge(ctx context.Context) (int, error) {
	c.lru.Purge()

	names, err := c.store.List(ctx, c.prefix)
	if err != nil {
		return 0, fmt.Errorf("distcache: list: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(purgeConcurrency)
	for _, name := range names {
		g.Go(func() error {
			if err := c.store.Delete(gctx, name); err != nil {
				return fmt.Errorf("distcache: delete %s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(names), nil
}
