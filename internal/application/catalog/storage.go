package catalog

import (
	"context"
	"io"
)

// Storage stores product images. The production implementation is S3; a
// local stub serves development.
type Storage interface {
	// Upload stores the object under key and returns its public URL
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
