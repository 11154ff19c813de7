package repository

import (
	"context"
	"io"
)

// Blob is stored media content together with its recorded content type.
type Blob struct {
	Data        []byte
	ContentType string
}

// Upload is one incoming file destined for blob storage.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// BlobStore stores opaque media bytes addressed by store-assigned ids.
// Ids are internal; they are only exposed to clients through media paths.
type BlobStore interface {
	// Store persists the bytes and returns a fresh id. Blobs are immutable.
	Store(ctx context.Context, r io.Reader, filename, contentType, ownerID string) (string, error)
	// StoreMany persists the uploads in order and returns their ids. There
	// is no batch atomicity: on failure the already-stored blobs stay in
	// place and the error is returned to the caller.
	StoreMany(ctx context.Context, items []Upload, ownerID string) ([]string, error)
	// Retrieve returns ErrBlobNotFound for unknown ids.
	Retrieve(ctx context.Context, id string) (*Blob, error)
	// Delete is idempotent; deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
