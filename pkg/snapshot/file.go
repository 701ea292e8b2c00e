package snapshot

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore stores snapshots as files in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store writing into it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storageError("create directory", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Put implements Store. The file is written to a temporary name and
// renamed, so readers never see a partial snapshot.
func (s *FileStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return storageError("put", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return storageError("put", name, err)
	}
	if err := tmp.Close(); err != nil {
		return storageError("put", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return storageError("put", name, err)
	}
	return nil
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(name, nil)
		}
		return nil, storageError("get", name, err)
	}
	return data, nil
}

// Location implements Store.
func (s *FileStore) Location(name string) string {
	return s.path(name)
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}
