package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store reads and writes immutable named blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically, replacing any existing blob.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes starting at off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a reader for length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs backed by memory mapped data.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll returns the full content of the named blob.
func ReadAll(ctx context.Context, s Store, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), data...), nil
	}
	if b.Size() == 0 {
		return []byte{}, nil
	}

	rc, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return nil, fmt.Errorf("blobstore: read %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("blobstore: read %s: %w", name, err)
	}
	return data, nil
}

// Stream opens the named blob and calls fn with a reader over its content
// and the blob size. The reader is only valid during fn.
func Stream(ctx context.Context, s Store, name string, fn func(r io.Reader, size int64) error) error {
	b, err := s.Open(ctx, name)
	if err != nil {
		return err
	}
	defer b.Close()

	if b.Size() == 0 {
		return fn(eofReader{}, 0)
	}

	rc, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return fmt.Errorf("blobstore: read %s: %w", name, err)
	}
	defer rc.Close()

	return fn(rc, b.Size())
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
