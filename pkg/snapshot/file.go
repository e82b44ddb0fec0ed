package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vango-dev/vtree/internal/errors"
)

// FileStore writes snapshots to a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New(errors.CodeSnapshotTarget).Wrap(err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory snapshots are written to.
func (s *FileStore) Dir() string {
	return s.dir
}

// Put writes html to <dir>/<name>.html. The file is replaced atomically.
func (s *FileStore) Put(ctx context.Context, name string, html []byte) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, fileName(name))
	tmp, err := os.CreateTemp(s.dir, "."+name+"-*")
	if err != nil {
		return "", errors.New(errors.CodeSnapshotWrite).Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return "", errors.New(errors.CodeSnapshotWrite).Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.New(errors.CodeSnapshotWrite).Wrap(err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", errors.New(errors.CodeSnapshotWrite).Wrap(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.New(errors.CodeSnapshotWrite).Wrap(err)
	}
	return path, nil
}
