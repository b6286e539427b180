// Package storage abstracts where uploaded post images live. Files are
// opaque blobs; nothing here inspects or transforms image bytes.
package storage

import (
	"context"
	"io"
)

// Store persists an uploaded blob and returns the public URL it will be
// served from.
type Store interface {
	Put(ctx context.Context, r io.Reader, contentType string) (string, error)
}
