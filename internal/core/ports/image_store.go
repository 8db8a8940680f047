package ports

import "io"

// ImageStore persists note image binaries keyed by stored filename.
// Open returns an error satisfying errors.Is(err, fs.ErrNotExist) when the
// binary is absent.
type ImageStore interface {
	Save(name string, data io.Reader) error
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
}

// ImageCleaner accepts stored filenames whose binaries should be removed off
// the request path, after their owning note is gone.
type ImageCleaner interface {
	Enqueue(name string)
}
