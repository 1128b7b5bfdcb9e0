package ports

import (
	"context"
	"io"
	"time"
)

// FileInfo describes one stored dataset file.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// FileStorage abstracts where dataset files live so the service can move
// from local disk to object storage without touching the processing code.
type FileStorage interface {
	// Store writes a new file and returns the name it was stored under.
	// Implementations version colliding names rather than overwrite.
	Store(ctx context.Context, r io.Reader, filename string) (string, error)

	// Open returns a reader for a stored file.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Replace overwrites an existing stored file with new content. Cleaning
	// tasks persist their result through this.
	Replace(ctx context.Context, name string, r io.Reader) error

	// Path returns the local path of a stored file, for loaders that need
	// extension-based dispatch.
	Path(name string) string

	// List enumerates stored dataset files.
	List(ctx context.Context) ([]FileInfo, error)

	// Delete removes a stored file.
	Delete(ctx context.Context, name string) error
}
