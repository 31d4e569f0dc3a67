// Package mmap maps files read-only into memory.
//
//	m, err := mmap.Open("network.ndump2")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2); Windows uses
// CreateFileMapping/MapViewOfFile and ignores access hints.
//
// A Mapping is safe for concurrent reads. Close is idempotent, but callers
// must not touch Bytes after Close returns.
package mmap
