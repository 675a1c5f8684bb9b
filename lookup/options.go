package lookup

import (
	"context"
	"database/sql"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/cache"
	"github.com/hupe1980/genemanifest/columnar"
)

// Opener returns a fresh database handle owned by the engine.
type Opener func(ctx context.Context) (*sql.DB, error)

// Options configures an Engine.
type Options struct {
	// Cache resolves remote sources. Required for scheme://bucket/key sources.
	Cache *cache.ObjectCache
	// Opener creates the backing store. Defaults to an in-memory DuckDB.
	Opener  Opener
	Logger  *genemanifest.Logger
	Metrics genemanifest.MetricsCollector
}

// WithCache sets the object cache used for remote sources.
func WithCache(c *cache.ObjectCache) func(*Options) {
	return func(o *Options) { o.Cache = c }
}

// WithDB replaces the backing store opener.
func WithDB(opener Opener) func(*Options) {
	return func(o *Options) { o.Opener = opener }
}

// WithLogger sets the logger.
func WithLogger(l *genemanifest.Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m genemanifest.MetricsCollector) func(*Options) {
	return func(o *Options) { o.Metrics = m }
}

func defaultOptions() Options {
	return Options{Opener: columnar.OpenMemory}
}
