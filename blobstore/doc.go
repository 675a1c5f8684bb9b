// Package blobstore provides read access to remote object stores.
//
// A Store opens objects addressed by bucket and key; a Lister enumerates keys
// under a prefix. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: buckets as directories on the local file system
//   - MemoryStore: in-memory objects, for tests
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible services
//
// Remote references use the scheme://bucket/key form understood by ParseURI.
package blobstore
