package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps blobs in a map. It is safe for concurrent use and
// serves as the input and output store of tests.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	m.mu.RLock()
	data, ok := m.blobs[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("blobstore: %s: %w", name, ErrNotFound)
	}
	// Put replaces slices instead of mutating them, so the blob can share data.
	return &memoryBlob{data: data, r: bytes.NewReader(data)}, nil
}

// Put stores a copy of data under name.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	copied := bytes.Clone(data)
	if copied == nil {
		copied = []byte{}
	}

	m.mu.Lock()
	m.blobs[name] = copied
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.blobs, name)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	m.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

// Len returns the number of stored blobs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}

type memoryBlob struct {
	data []byte
	r    *bytes.Reader
}

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return b.r.ReadAt(p, off)
}

func (b *memoryBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || off > b.r.Size() {
		return nil, io.EOF
	}
	return io.NopCloser(io.NewSectionReader(b.r, off, length)), nil
}

func (b *memoryBlob) Bytes() ([]byte, error) { return b.data, nil }

func (b *memoryBlob) Close() error { return nil }

func (b *memoryBlob) Size() int64 { return b.r.Size() }
