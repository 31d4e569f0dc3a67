// Package blobstore provides the storage abstraction for network inputs,
// distance matrix outputs and transient run artifacts.
//
// Store is the interface for reading and writing named blobs. Names are slash
// separated and relative to the store root. Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads are served from mmap
//   - MemoryStore: in-process map, used by tests
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
