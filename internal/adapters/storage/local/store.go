// Package local stores candidate materials on the local filesystem and
// serves them under /uploads.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/orgvote/orgvote/internal/core/ports"
)

type Store struct {
	baseDir   string
	publicURL string
}

// NewStore creates baseDir if needed. publicURL is the path prefix the
// HTTP layer serves baseDir under, e.g. "/uploads".
func NewStore(baseDir, publicURL string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{baseDir: baseDir, publicURL: publicURL}, nil
}

var _ ports.BlobStore = (*Store)(nil)

func (s *Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	// Stored under a random name; the original file name lives only in
	// the candidate_files row.
	fileName := uuid.NewString() + filepath.Ext(name)

	f, err := os.Create(filepath.Join(s.baseDir, fileName))
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	return s.publicURL + "/" + fileName, nil
}

func (s *Store) Remove(ctx context.Context, path string) error {
	fileName := filepath.Base(path)
	if err := os.Remove(filepath.Join(s.baseDir, fileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	return nil
}

// Dir exposes the backing directory for static file serving.
func (s *Store) Dir() string {
	return s.baseDir
}
