package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/blobstore"
)

// Options configures an ObjectCache.
type Options struct {
	Logger  *genemanifest.Logger
	Metrics genemanifest.MetricsCollector
	// DirPerm and FilePerm are used for created directories and files.
	DirPerm  os.FileMode
	FilePerm os.FileMode
}

// WithLogger sets the logger.
func WithLogger(l *genemanifest.Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m genemanifest.MetricsCollector) func(*Options) {
	return func(o *Options) { o.Metrics = m }
}

// Stats are cumulative cache counters.
type Stats struct {
	Hits         int64
	Misses       int64
	BytesFetched int64
}

// ObjectCache resolves remote objects to local files.
type ObjectCache struct {
	root    string
	store   blobstore.Store
	opts    Options
	logger  *genemanifest.Logger
	metrics genemanifest.MetricsCollector

	hits   atomic.Int64
	misses atomic.Int64
	bytes  atomic.Int64
}

// New creates an ObjectCache rooted at root that fills misses from store.
func New(root string, store blobstore.Store, optFns ...func(*Options)) *ObjectCache {
	opts := Options{
		DirPerm:  0o755,
		FilePerm: 0o644,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ObjectCache{
		root:    root,
		store:   store,
		opts:    opts,
		logger:  genemanifest.OrNoop(opts.Logger),
		metrics: genemanifest.MetricsOrNoop(opts.Metrics),
	}
}

// Root returns the cache root directory.
func (c *ObjectCache) Root() string {
	return c.root
}

// Path returns the local path for key. The bucket does not take part in the
// mapping: keys of different buckets share one namespace below root.
func (c *ObjectCache) Path(bucket, key string) (string, error) {
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("cache: key %q of bucket %q escapes the cache root", key, bucket)
	}
	return filepath.Join(c.root, rel), nil
}

// Stats returns a snapshot of the cache counters.
func (c *ObjectCache) Stats() Stats {
	return Stats{
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		BytesFetched: c.bytes.Load(),
	}
}

// ResolveURI resolves a scheme://bucket/key reference.
func (c *ObjectCache) ResolveURI(ctx context.Context, uri string) (string, error) {
	u, ok := blobstore.ParseURI(uri)
	if !ok {
		return "", fmt.Errorf("cache: %q is not a remote reference", uri)
	}
	return c.Resolve(ctx, u.Bucket, u.Key)
}

// Resolve returns the local path of bucket/key, downloading the object on a
// miss. A missing object yields *genemanifest.NotFoundError, any other
// transfer failure *genemanifest.TransportError. No partial file is left
// behind after a failed transfer.
func (c *ObjectCache) Resolve(ctx context.Context, bucket, key string) (string, error) {
	path, err := c.Path(bucket, key)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		c.hits.Add(1)
		c.logger.DebugContext(ctx, "cache hit", "bucket", bucket, "key", key, "path", path)
		return path, nil
	}
	c.misses.Add(1)

	if c.store == nil {
		return "", genemanifest.NewTransportError(bucket, key, errors.New("no object store configured"))
	}

	if err := os.MkdirAll(filepath.Dir(path), c.opts.DirPerm); err != nil {
		return "", fmt.Errorf("cache: create directory for %s: %w", path, err)
	}

	start := time.Now()
	n, err := c.fetch(ctx, bucket, key, path)
	c.metrics.RecordFetch(n, time.Since(start), err)
	c.logger.LogFetch(ctx, bucket, key, n, err)
	if err != nil {
		return "", err
	}
	c.bytes.Add(n)
	return path, nil
}

func (c *ObjectCache) fetch(ctx context.Context, bucket, key, path string) (n int64, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, c.opts.FilePerm)
	if err != nil {
		return 0, fmt.Errorf("cache: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cache: close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if d, ok := c.store.(blobstore.Downloader); ok {
		n, err = d.Download(ctx, bucket, key, f)
		if err != nil {
			return n, classify(bucket, key, err)
		}
		return n, nil
	}

	rc, err := c.store.Open(ctx, bucket, key)
	if err != nil {
		return 0, classify(bucket, key, err)
	}
	defer func() { _ = rc.Close() }()

	n, err = io.Copy(f, rc)
	if err != nil {
		return n, genemanifest.NewTransportError(bucket, key, err)
	}
	return n, nil
}

func classify(bucket, key string, err error) error {
	if errors.Is(err, blobstore.ErrNotFound) {
		return genemanifest.NewNotFoundError(bucket+"/"+key, err)
	}
	return genemanifest.NewTransportError(bucket, key, err)
}
