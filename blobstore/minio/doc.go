// Package minio provides a blobstore.Store and blobstore.Lister using the
// MinIO client.
//
// MinIO is an S3-compatible object storage system. This package works with
// MinIO and other S3-compatible services like Ceph, SeaweedFS and Garage,
// without the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client)
//	objects := cache.New("/tmp/genemanifest", store)
package minio
