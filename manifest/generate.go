package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/hupe1980/genemanifest/columnar"
	"github.com/hupe1980/genemanifest/ingest"
)

var errNoCache = errors.New("no object cache configured")

// GenerateOptions configures Generate.
type GenerateOptions struct {
	// Pattern overrides DefaultPattern.
	Pattern string
	// Compression is the Parquet codec. Defaults to snappy.
	Compression string
	Ingest      []func(*ingest.Options)
	Logger      *genemanifest.Logger
}

// WithPattern sets the extraction pattern.
func WithPattern(pattern string) func(*GenerateOptions) {
	return func(o *GenerateOptions) { o.Pattern = pattern }
}

// WithCompression sets the Parquet codec.
func WithCompression(codec string) func(*GenerateOptions) {
	return func(o *GenerateOptions) { o.Compression = codec }
}

// WithIngestOptions passes options to the ingestion builder.
func WithIngestOptions(optFns ...func(*ingest.Options)) func(*GenerateOptions) {
	return func(o *GenerateOptions) { o.Ingest = append(o.Ingest, optFns...) }
}

// WithGenerateLogger sets the logger.
func WithGenerateLogger(l *genemanifest.Logger) func(*GenerateOptions) {
	return func(o *GenerateOptions) { o.Logger = l }
}

// Generate reads newline-delimited object paths from r and writes the
// manifest to dest.
func Generate(ctx context.Context, r io.Reader, dest string, optFns ...func(*GenerateOptions)) (ingest.Stats, error) {
	var opts GenerateOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	kind, err := NewKind(opts.Pattern)
	if err != nil {
		return ingest.Stats{}, err
	}

	writer, err := columnar.NewWriter(func(o *columnar.WriterOptions) {
		if opts.Compression != "" {
			o.Compression = opts.Compression
		}
		o.Logger = opts.Logger
	})
	if err != nil {
		return ingest.Stats{}, err
	}

	builderOpts := append([]func(*ingest.Options){ingest.WithLogger(opts.Logger)}, opts.Ingest...)
	b, err := ingest.NewBuilder(kind, writer, builderOpts...)
	if err != nil {
		return ingest.Stats{}, err
	}
	return b.Run(ctx, r, dest)
}

// GenerateFromBucket lists bucket/prefix into a temporary key list and builds
// the manifest from it. Keys are stored bare; open the manifest with
// WithDataBucket(bucket) to resolve them.
func GenerateFromBucket(ctx context.Context, l blobstore.Lister, bucket, prefix, dest string, optFns ...func(*GenerateOptions)) (ingest.Stats, error) {
	var opts GenerateOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	tmp, err := os.CreateTemp("", "genemanifest-keys-*.txt")
	if err != nil {
		return ingest.Stats{}, fmt.Errorf("manifest: create key list: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := blobstore.WriteKeys(ctx, l, bucket, prefix, tmp, opts.Logger); err != nil {
		return ingest.Stats{}, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return ingest.Stats{}, fmt.Errorf("manifest: rewind key list: %w", err)
	}
	return Generate(ctx, tmp, dest, optFns...)
}
