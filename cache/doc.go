// Package cache materializes remote objects as local files.
//
// ObjectCache maps (bucket, key) to root/key and fetches the object from a
// blobstore.Store on first reference. Entries live until the process (or an
// operator) removes them: there is no eviction, and concurrent resolvers of
// the same key are not coordinated.
package cache
