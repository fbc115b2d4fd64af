package service

import (
	"context"
	"io"
)

// FileStorage is the object-storage collaborator used for pitch-deck uploads.
type FileStorage interface {
	// Upload stores the content under the given key and returns a public URL.
	Upload(ctx context.Context, key, contentType string, content io.Reader) (string, error)

	// Delete removes a previously uploaded object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
