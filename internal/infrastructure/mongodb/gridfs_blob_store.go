package mongodb

import (
	"bytes"
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakilait22310750/skillsync/internal/domain/repository"
)

// GridFSBlobStore keeps media blobs in a GridFS bucket. Blob ids are the
// hex form of the GridFS file id; content type and owner travel in the file
// metadata.
type GridFSBlobStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSBlobStore(db *mongo.Database) (*GridFSBlobStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("media"))
	if err != nil {
		return nil, err
	}
	return &GridFSBlobStore{bucket: bucket}, nil
}

func (s *GridFSBlobStore) Store(ctx context.Context, r io.Reader, filename, contentType, ownerID string) (string, error) {
	id := primitive.NewObjectID()
	opts := options.GridFSUpload().SetMetadata(bson.M{
		"ownerId":     ownerID,
		"contentType": contentType,
	})
	if err := s.bucket.UploadFromStreamWithID(id, filename, r, opts); err != nil {
		return "", err
	}
	return id.Hex(), nil
}

func (s *GridFSBlobStore) StoreMany(ctx context.Context, items []repository.Upload, ownerID string) ([]string, error) {
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

func (s *GridFSBlobStore) Retrieve(ctx context.Context, id string) (*repository.Blob, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrBlobNotFound
	}
	ds, err := s.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, err
	}
	defer func() { _ = ds.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, ds); err != nil {
		return nil, err
	}

	contentType := ""
	if md := ds.GetFile().Metadata; md != nil {
		if v, ok := md.Lookup("contentType").StringValueOK(); ok {
			contentType = v
		}
	}
	return &repository.Blob{Data: buf.Bytes(), ContentType: contentType}, nil
}

func (s *GridFSBlobStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil // never stored by us, nothing to delete
	}
	if err := s.bucket.Delete(oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil
		}
		return err
	}
	return nil
}

var _ repository.BlobStore = (*GridFSBlobStore)(nil)
