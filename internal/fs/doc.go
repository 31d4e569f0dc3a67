// Package fs provides the filesystem operations of the local blob store
// behind an interface, for testability and fault injection.
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test wrapper that fails writes, syncs or closes of
//     matching files
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("gdda.txt", fs.Fault{FailAfterBytes: 0})
//	store := blobstore.NewLocalStoreWithFS(dir, ffs)
package fs
