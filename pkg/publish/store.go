package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is where snapshot files go.
type Store interface {
	// Put stores one file under its snapshot path.
	Put(ctx context.Context, f File) error

	// Location describes where the store writes, for messages.
	Location() string
}

// DirStore writes files below a local directory.
type DirStore struct {
	dir string
}

// NewDirStore creates the directory if needed and returns a store writing
// into it.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DirStore{dir: dir}, nil
}

// Put writes f, creating parent directories.
func (s *DirStore) Put(ctx context.Context, f File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(f.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return os.WriteFile(target, f.Data, 0644)
}

// resolve maps a snapshot path into the directory, refusing paths that
// would escape it.
func (s *DirStore) resolve(p string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("publish: path %q escapes the output directory", p)
	}
	return filepath.Join(s.dir, clean), nil
}

// Location returns the directory.
func (s *DirStore) Location() string {
	return s.dir
}
