// Package storage persists note image binaries on the local filesystem,
// one flat directory keyed by stored filename.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Save writes the binary under name. Names are generated by the service, but
// any path components are stripped anyway so a crafted name cannot escape
// the upload directory.
func (s *LocalImageStore) Save(name string, data io.Reader) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write image file: %w", err)
	}
	return nil
}

// Open returns the stored binary. The error satisfies
// errors.Is(err, fs.ErrNotExist) when the file is absent.
func (s *LocalImageStore) Open(name string) (io.ReadCloser, error) {
	return os.Open(s.path(name))
}

// Remove deletes the stored binary. Removing an absent file is not an error.
func (s *LocalImageStore) Remove(name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalImageStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
