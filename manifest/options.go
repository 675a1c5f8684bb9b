package manifest

import (
	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/cache"
	"github.com/hupe1980/genemanifest/lookup"
)

// Options configures Open.
type Options struct {
	// Cache resolves remote manifests and the objects they reference.
	Cache *cache.ObjectCache
	// DataBucket is the bucket bare stored keys are resolved in. Defaults to
	// the bucket of a remotely opened manifest.
	DataBucket string
	// Opener replaces the embedded store. Mainly for tests.
	Opener  lookup.Opener
	Logger  *genemanifest.Logger
	Metrics genemanifest.MetricsCollector
}

// WithCache sets the object cache.
func WithCache(c *cache.ObjectCache) func(*Options) {
	return func(o *Options) { o.Cache = c }
}

// WithDataBucket sets the bucket used for stored bare keys.
func WithDataBucket(bucket string) func(*Options) {
	return func(o *Options) { o.DataBucket = bucket }
}

// WithDB replaces the embedded store opener.
func WithDB(opener lookup.Opener) func(*Options) {
	return func(o *Options) { o.Opener = opener }
}

// WithMetrics sets the metrics collector of the lookup engine.
func WithMetrics(m genemanifest.MetricsCollector) func(*Options) {
	return func(o *Options) { o.Metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *genemanifest.Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}
