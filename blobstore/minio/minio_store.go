package minio

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store implements blobstore.Store and blobstore.Lister for MinIO and
// S3-compatible storage.
type Store struct {
	client *minio.Client
}

var (
	_ blobstore.Store  = (*Store)(nil)
	_ blobstore.Lister = (*Store)(nil)
)

// NewStore creates a new MinIO store around an existing client.
func NewStore(client *minio.Client) *Store {
	return &Store{client: client}
}

// Dial creates a client for endpoint with static credentials.
func Dial(endpoint, accessKey, secretKey, region string, secure bool) (*Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}
	return NewStore(client), nil
}

// Open opens an object for reading.
func (s *Store) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError(err)
	}
	// GetObject is lazy; Stat surfaces a missing key before the caller starts
	// writing a destination file.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, translateError(err)
	}
	return obj, nil
}

// List returns all keys in bucket with the given prefix.
func (s *Store) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, translateError(obj.Err)
		}
		keys = append(keys, obj.Key)
	}

	sort.Strings(keys)
	return keys, nil
}

func translateError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return fmt.Errorf("%w: %w", blobstore.ErrNotFound, err)
	default:
		return err
	}
}
