package gcs

import (
	"bytes"
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/sakilait22310750/skillsync/internal/domain/repository"
)

// NewClient creates a Google Cloud Storage client. If credsPath is empty,
// Application Default Credentials are used.
func NewClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// BlobStore keeps media blobs as objects in a GCS bucket. Object names are
// store-assigned UUIDs; the original filename and owner are kept as object
// metadata.
type BlobStore struct {
	client *storage.Client
	bucket string
}

func NewBlobStore(client *storage.Client, bucket string) *BlobStore {
	return &BlobStore{client: client, bucket: bucket}
}

func (s *BlobStore) Store(ctx context.Context, r io.Reader, filename, contentType, ownerID string) (string, error) {
	id := uuid.NewString()
	w := s.client.Bucket(s.bucket).Object(id).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"owner": ownerID, "filename": filename}
	w.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *BlobStore) StoreMany(ctx context.Context, items []repository.Upload, ownerID string) ([]string, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		id, err := s.Store(ctx, it.Reader, it.Filename, it.ContentType, ownerID)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *BlobStore) Retrieve(ctx context.Context, id string) (*repository.Blob, error) {
	rd, err := s.client.Bucket(s.bucket).Object(id).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, err
	}
	defer func() { _ = rd.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rd); err != nil {
		return nil, err
	}
	return &repository.Blob{Data: buf.Bytes(), ContentType: rd.Attrs.ContentType}, nil
}

func (s *BlobStore) Delete(ctx context.Context, id string) error {
	err := s.client.Bucket(s.bucket).Object(id).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

var _ repository.BlobStore = (*BlobStore)(nil)
