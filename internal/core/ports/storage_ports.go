package ports

import (
	"context"
	"io"
)

// BlobStore is the opaque file store for candidate materials, keyed by the
// path it hands back.
type BlobStore interface {
	// Save writes the blob and returns its public path.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}
