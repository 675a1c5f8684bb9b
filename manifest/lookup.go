package manifest

import (
	"context"
	"path/filepath"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/hupe1980/genemanifest/lookup"
)

// Lookup answers gene/tissue queries over one loaded manifest.
type Lookup struct {
	engine *lookup.Engine[Record]
	opts   Options
	logger *genemanifest.Logger
}

// Open loads the manifest at source, a local path or scheme://bucket/key.
func Open(ctx context.Context, source string, optFns ...func(*Options)) (*Lookup, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	kind, err := NewKind("")
	if err != nil {
		return nil, err
	}

	engineOpts := []func(*lookup.Options){
		lookup.WithCache(opts.Cache),
		lookup.WithLogger(opts.Logger),
		lookup.WithMetrics(opts.Metrics),
	}
	if opts.Opener != nil {
		engineOpts = append(engineOpts, lookup.WithDB(opts.Opener))
	}

	eng := lookup.New[Record](kind, engineOpts...)
	if err := eng.Open(ctx, source); err != nil {
		return nil, err
	}

	if opts.DataBucket == "" {
		if u, ok := eng.Remote(); ok {
			opts.DataBucket = u.Bucket
		}
	}

	return &Lookup{
		engine: eng,
		opts:   opts,
		logger: genemanifest.OrNoop(opts.Logger),
	}, nil
}

// Engine returns the underlying lookup engine.
func (l *Lookup) Engine() *lookup.Engine[Record] {
	return l.engine
}

// Query returns the records matching the present values. A present tissue is
// normalized first. At least one value must be present.
func (l *Lookup) Query(ctx context.Context, gene, tissue lookup.Value) ([]Record, error) {
	p := lookup.Predicate{ColumnGeneID: gene}
	if v, ok := tissue.Get(); ok {
		id, err := NormalizeTissueID(v)
		if err != nil {
			return nil, err
		}
		p[ColumnTissueID] = lookup.Some(id)
	}
	return l.engine.Query(ctx, p)
}

// Exists reports whether the gene/tissue pair is in the manifest.
func (l *Lookup) Exists(ctx context.Context, gene string, tissue any) (bool, error) {
	recs, err := l.Query(ctx, lookup.Some(gene), lookup.Some(tissue))
	if err != nil {
		return false, err
	}
	return len(recs) > 0, nil
}

// RecordsForGene returns every record of gene.
func (l *Lookup) RecordsForGene(ctx context.Context, gene string) ([]Record, error) {
	return l.Query(ctx, lookup.Some(gene), lookup.None())
}

// RecordsForTissue returns every record of tissue.
func (l *Lookup) RecordsForTissue(ctx context.Context, tissue any) ([]Record, error) {
	return l.Query(ctx, lookup.None(), lookup.Some(tissue))
}

// RemotePath returns the stored location of the gene/tissue pair. If several
// records match, the first returned by the store is used.
func (l *Lookup) RemotePath(ctx context.Context, gene string, tissue any) (string, bool, error) {
	recs, err := l.Query(ctx, lookup.Some(gene), lookup.Some(tissue))
	if err != nil || len(recs) == 0 {
		return "", false, err
	}
	return recs[0].FilePath, true, nil
}

// FilePath returns a local path holding the object of the gene/tissue pair,
// downloading it into the cache if needed.
//
// A stored scheme://bucket/key is resolved through the cache. A relative
// stored path is treated as a key of the data bucket when one is known.
// Anything else is returned as stored.
func (l *Lookup) FilePath(ctx context.Context, gene string, tissue any) (string, bool, error) {
	stored, ok, err := l.RemotePath(ctx, gene, tissue)
	if err != nil || !ok {
		return "", false, err
	}

	if u, isRemote := blobstore.ParseURI(stored); isRemote {
		if l.opts.Cache == nil {
			return "", false, genemanifest.NewTransportError(u.Bucket, u.Key, errNoCache)
		}
		path, err := l.opts.Cache.Resolve(ctx, u.Bucket, u.Key)
		if err != nil {
			return "", false, err
		}
		return path, true, nil
	}

	if l.opts.Cache != nil && l.opts.DataBucket != "" && !filepath.IsAbs(stored) {
		path, err := l.opts.Cache.Resolve(ctx, l.opts.DataBucket, stored)
		if err != nil {
			return "", false, err
		}
		l.logger.DebugContext(ctx, "resolved bare key", "bucket", l.opts.DataBucket, "key", stored, "path", path)
		return path, true, nil
	}

	return stored, true, nil
}

// Genes returns the distinct genes in ascending order.
func (l *Lookup) Genes(ctx context.Context) ([]string, error) {
	vals, err := l.engine.Unique(ctx, ColumnGeneID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.(string))
	}
	return out, nil
}

// Tissues returns the distinct tissues in ascending order.
func (l *Lookup) Tissues(ctx context.Context) ([]int32, error) {
	vals, err := l.engine.Unique(ctx, ColumnTissueID)
	if err != nil {
		return nil, err
	}
	out := make([]int32, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.(int32))
	}
	return out, nil
}

// Count returns the number of records.
func (l *Lookup) Count(ctx context.Context) (int64, error) {
	return l.engine.Count(ctx)
}

// Close releases the embedded store.
func (l *Lookup) Close() error {
	return l.engine.Close()
}
