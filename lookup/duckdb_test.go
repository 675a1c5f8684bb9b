package lookup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/hupe1980/genemanifest/cache"
	"github.com/hupe1980/genemanifest/columnar"
	"github.com/hupe1980/genemanifest/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	path7  = "s3://b/x/v1/ad/GENE1/model_tissue_7.tl"
	path12 = "s3://b/x/v1/ad/GENE2/model_tissue_12.tl"
)

func writeManifest(t *testing.T, dir string) string {
	t.Helper()

	w, err := columnar.NewWriter()
	require.NoError(t, err)

	dest := filepath.Join(dir, "manifest.parquet")
	err = w.Write(context.Background(), testContract,
		[]string{"gene_id", "tissue_id", "file_path"},
		[]schema.Row{
			{"GENE1", int64(7), path7},
			{"GENE2", int64(12), path12},
		},
		dest, 1000)
	require.NoError(t, err)
	return dest
}

func TestEngine_DuckDBScenario(t *testing.T) {
	ctx := context.Background()
	src := writeManifest(t, t.TempDir())

	metrics := &genemanifest.BasicMetricsCollector{}
	eng := New[testRecord](testKind{}, WithMetrics(metrics))
	require.NoError(t, eng.Open(ctx, src))
	defer eng.Close()
	assert.EqualValues(t, 1, metrics.GetStats().LoadCount)

	recs, err := eng.Query(ctx, Predicate{"gene_id": Some("GENE1")})
	require.NoError(t, err)
	assert.Equal(t, []testRecord{{Gene: "GENE1", Tissue: 7, Path: path7}}, recs)

	recs, err = eng.Query(ctx, Predicate{"tissue_id": Some(12)})
	require.NoError(t, err)
	assert.Equal(t, []testRecord{{Gene: "GENE2", Tissue: 12, Path: path12}}, recs)

	recs, err = eng.Query(ctx, Predicate{"gene_id": Some("GENE1"), "tissue_id": Some(12)})
	require.NoError(t, err)
	assert.Empty(t, recs)

	for _, p := range []Predicate{
		{"gene_id": Some("GENE1")},
		{"gene_id": Some("GENE3")},
		{"tissue_id": Some(7), "gene_id": Some("GENE1")},
	} {
		recs, err := eng.Query(ctx, p)
		require.NoError(t, err)
		ok, err := eng.Exists(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, len(recs) > 0, ok)
	}

	genes, err := eng.Unique(ctx, "gene_id")
	require.NoError(t, err)
	assert.Equal(t, []any{"GENE1", "GENE2"}, genes)

	n, err := eng.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	s := metrics.GetStats()
	assert.EqualValues(t, 9, s.QueryCount)
	assert.Zero(t, s.QueryErrors)
}

func TestEngine_DuckDBMissingColumn(t *testing.T) {
	ctx := context.Background()
	src := filepath.Join(t.TempDir(), "bad.parquet")

	db, err := columnar.OpenMemory(ctx)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "COPY (SELECT 'GENE1' AS gene_id, 'p' AS file_path) TO "+
		columnar.QuoteLiteral(src)+" (FORMAT PARQUET)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	eng := New[testRecord](testKind{})
	err = eng.Open(ctx, src)

	var serr *genemanifest.SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []string{"tissue_id"}, serr.Missing)
	assert.Contains(t, serr.Error(), "tissue_id")
	assert.Equal(t, StateFailed, eng.State())
}

func TestEngine_DuckDBRemoteThroughCache(t *testing.T) {
	ctx := context.Background()
	src := writeManifest(t, t.TempDir())
	data, err := os.ReadFile(src)
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	store.Put("bucket", "manifests/manifest.parquet", data)
	c := cache.New(t.TempDir(), store)

	eng := New[testRecord](testKind{}, WithCache(c))
	require.NoError(t, eng.Open(ctx, "s3://bucket/manifests/manifest.parquet"))
	defer eng.Close()

	assert.Equal(t, filepath.Join(c.Root(), "manifests", "manifest.parquet"), eng.LocalPath())
	u, ok := eng.Remote()
	require.True(t, ok)
	assert.Equal(t, "bucket", u.Bucket)

	ok, err = eng.Exists(ctx, Predicate{"tissue_id": Some(7)})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEngine_DuckDBRemoteMissing(t *testing.T) {
	c := cache.New(t.TempDir(), blobstore.NewMemoryStore())
	eng := New[testRecord](testKind{}, WithCache(c))

	err := eng.Open(context.Background(), "s3://bucket/nope.parquet")

	var nerr *genemanifest.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, StateFailed, eng.State())
}
