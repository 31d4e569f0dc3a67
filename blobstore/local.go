package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hupe1980/netcmp/internal/fs"
	"github.com/hupe1980/netcmp/internal/mmap"
)

// LocalStore implements Store using the local file system.
type LocalStore struct {
	root string
	fsys fs.FileSystem
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return NewLocalStoreWithFS(root, fs.Default)
}

// NewLocalStoreWithFS creates a LocalStore that writes through fsys.
// Reads always use the os package.
func NewLocalStoreWithFS(root string, fsys fs.FileSystem) *LocalStore {
	if fsys == nil {
		fsys = fs.Default
	}
	return &LocalStore{root: root, fsys: fsys}
}

// Root returns the store's root directory.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open opens a blob for reading. Its content is memory mapped.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	m, err := mmap.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)
	return &localBlob{m: m}, nil
}

// Put writes data to a temporary file, syncs it and renames it into place.
func (s *LocalStore) Put(_ context.Context, name string, data []byte) error {
	path := s.path(name)
	dir := filepath.Dir(path)
	if err := s.fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpName := filepath.Join(dir, "."+filepath.Base(path)+".tmp-"+uuid.NewString())
	tmp, err := s.fsys.OpenFile(tmpName, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fsys.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = s.fsys.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fsys.Remove(tmpName)
		return err
	}
	if err := s.fsys.Rename(tmpName, path); err != nil {
		_ = s.fsys.Remove(tmpName)
		return err
	}
	return nil
}

// Delete removes a blob and any directories it leaves empty below the root.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	path := s.path(name)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	root := filepath.Clean(s.root)
	for dir := filepath.Dir(path); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
		if os.Remove(dir) != nil {
			break
		}
	}
	return nil
}

// List walks the root directory and returns every regular file whose
// slash separated relative name starts with prefix.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return b.m.ReadAt(p, off)
}

func (b *localBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	data := b.m.Bytes()
	if off < 0 || off > int64(len(data)) {
		return nil, io.EOF
	}
	end := off + length
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return io.NopCloser(bytes.NewReader(data[off:end])), nil
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}

func (b *localBlob) Bytes() ([]byte, error) {
	return b.m.Bytes(), nil
}
