// Package s3 provides an Amazon S3 implementation of blobstore.Store and
// blobstore.Lister.
//
// # Usage
//
//	store, err := s3.New(ctx,
//	    s3.WithRegion("us-east-1"),
//	    s3.WithProfile("research"),
//	)
//
//	objects := cache.New("/tmp/genemanifest", store)
//
// # Features
//
//   - Streaming GETs for cache fills
//   - Ranged downloads via the S3 transfer manager (blobstore.Downloader)
//   - Automatic pagination for listing
package s3
