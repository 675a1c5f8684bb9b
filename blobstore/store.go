package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when an object does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store reads immutable objects addressed by bucket and key.
type Store interface {
	// Open opens an object for streaming reads.
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Lister enumerates object keys under a prefix.
type Lister interface {
	// List returns all keys in bucket starting with prefix, in lexical order.
	List(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Downloader is an optional interface for stores that can fetch an object
// straight into a random-access destination (e.g. ranged parallel GETs).
type Downloader interface {
	Download(ctx context.Context, bucket, key string, w io.WriterAt) (int64, error)
}
