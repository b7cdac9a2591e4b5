package storage

import (
	"context"
	"io"
)

// FileStorage backs profile image uploads. Only a local-disk implementation
// exists; the interface keeps an object-store swap possible.
type FileStorage interface {
	// Upload stores a file and returns the storage key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL for a stored file
	GetURL(ctx context.Context, path string) (string, error)
}
