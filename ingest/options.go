package ingest

import "github.com/hupe1980/genemanifest"

// Default sizing.
const (
	DefaultChunkSize     = 10_000
	DefaultProgressEvery = 50_000
	DefaultRowGroupMin   = 1_000
	DefaultRowGroupMax   = 50_000
)

// Options configures a Builder.
type Options struct {
	// ChunkSize is the number of non-blank lines extracted per chunk.
	ChunkSize int
	// ProgressEvery logs cumulative counters every N input lines. 0 disables.
	ProgressEvery int
	// RowGroupMin and RowGroupMax bound the row group size of written files.
	RowGroupMin int
	RowGroupMax int
	Logger      *genemanifest.Logger
	Metrics     genemanifest.MetricsCollector
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		ChunkSize:     DefaultChunkSize,
		ProgressEvery: DefaultProgressEvery,
		RowGroupMin:   DefaultRowGroupMin,
		RowGroupMax:   DefaultRowGroupMax,
	}
}

// WithChunkSize sets the chunk size.
func WithChunkSize(n int) func(*Options) {
	return func(o *Options) { o.ChunkSize = n }
}

// WithProgressEvery sets the progress interval in lines.
func WithProgressEvery(n int) func(*Options) {
	return func(o *Options) { o.ProgressEvery = n }
}

// WithRowGroupBounds sets the row group size bounds.
func WithRowGroupBounds(lower, upper int) func(*Options) {
	return func(o *Options) {
		o.RowGroupMin = lower
		o.RowGroupMax = upper
	}
}

// WithLogger sets the logger.
func WithLogger(l *genemanifest.Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m genemanifest.MetricsCollector) func(*Options) {
	return func(o *Options) { o.Metrics = m }
}

// RowGroupSize returns min(upper, max(lower, records/10)): proportionate to the
// volume, bounded at both ends.
func RowGroupSize(records, lower, upper int) int {
	return min(upper, max(lower, records/10))
}
