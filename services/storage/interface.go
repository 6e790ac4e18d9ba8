package storage

import (
	"context"
	"io"
)

// DocumentStore persists uploaded documents and hands back an opaque reference.
type DocumentStore interface {
	// Store uploads body under scope and returns the stored reference.
	Store(ctx context.Context, body io.Reader, filename, scope string) (string, error)
	// Delete removes a previously stored document.
	Delete(ctx context.Context, reference string) error
}
