package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	// Save stores the reader under the user's namespace and returns the
	// generated storage key.
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	// Open retrieves a previously stored object.
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// KeyedSaver is implemented by stores that can write to a caller-chosen key.
// Derived artifacts such as extracted proof text use it to land next to
// their source object.
type KeyedSaver interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}
