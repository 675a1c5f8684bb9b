package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/hupe1980/genemanifest/cache"
	"github.com/hupe1980/genemanifest/columnar"
	"github.com/hupe1980/genemanifest/ingest"
	"github.com/hupe1980/genemanifest/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	path7  = "s3://b/x/v1/ad/GENE1/model_tissue_7.tl"
	path12 = "s3://b/x/v1/ad/GENE2/model_tissue_12.tl"
)

const scenario = path7 + "\n" + path12 + "\n" + "s3://b/x/other/file.txt\n"

func generate(t *testing.T, input string, optFns ...func(*GenerateOptions)) (string, ingest.Stats) {
	t.Helper()
	dest := filepath.Join(t.TempDir(), "manifest.parquet")
	stats, err := Generate(context.Background(), strings.NewReader(input), dest, optFns...)
	require.NoError(t, err)
	return dest, stats
}

func TestScenario(t *testing.T) {
	ctx := context.Background()
	dest, stats := generate(t, scenario)

	assert.Equal(t, 2, stats.Valid)
	assert.Equal(t, 1, stats.Invalid)

	m, err := Open(ctx, dest)
	require.NoError(t, err)
	defer m.Close()

	ok, err := m.Exists(ctx, "GENE1", 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Exists(ctx, "GENE1", 12)
	require.NoError(t, err)
	assert.False(t, ok)

	recs, err := m.RecordsForGene(ctx, "GENE2")
	require.NoError(t, err)
	assert.Equal(t, []Record{{GeneID: "GENE2", TissueID: 12, FilePath: path12}}, recs)

	recs, err = m.RecordsForTissue(ctx, "model_tissue_7")
	require.NoError(t, err)
	assert.Equal(t, []Record{{GeneID: "GENE1", TissueID: 7, FilePath: path7}}, recs)

	remote, ok, err := m.RemotePath(ctx, "GENE1", "tissue_7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, path7, remote)

	_, ok, err = m.RemotePath(ctx, "GENE9", 7)
	require.NoError(t, err)
	assert.False(t, ok)

	genes, err := m.Genes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"GENE1", "GENE2"}, genes)

	tissues, err := m.Tissues(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int32{7, 12}, tissues)

	n, err := m.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestTissueFormsAreEquivalent(t *testing.T) {
	ctx := context.Background()
	dest, _ := generate(t, scenario)

	m, err := Open(ctx, dest)
	require.NoError(t, err)
	defer m.Close()

	var want []Record
	for i, tissue := range []any{"model_tissue_12", "model_12", "tissue_12", "12", 12} {
		recs, err := m.Query(ctx, lookup.Some("GENE2"), lookup.Some(tissue))
		require.NoError(t, err)
		if i == 0 {
			want = recs
			require.Len(t, want, 1)
			continue
		}
		assert.Equal(t, want, recs, "tissue %v", tissue)
	}
}

func TestQueryRequiresAFilter(t *testing.T) {
	ctx := context.Background()
	dest, _ := generate(t, scenario)

	m, err := Open(ctx, dest)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Query(ctx, lookup.None(), lookup.None())
	var qerr *genemanifest.QueryError
	assert.ErrorAs(t, err, &qerr)

	_, err = m.Query(ctx, lookup.None(), lookup.Some("tissue_abc"))
	assert.ErrorAs(t, err, &qerr)
}

func TestClosedLookup(t *testing.T) {
	ctx := context.Background()
	dest, _ := generate(t, scenario)

	m, err := Open(ctx, dest)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	_, err = m.Exists(ctx, "GENE1", 7)
	var serr *genemanifest.StateError
	assert.ErrorAs(t, err, &serr)
}

func TestOpenMissingManifest(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.parquet"))
	var nerr *genemanifest.NotFoundError
	assert.ErrorAs(t, err, &nerr)
}

func TestFilePathThroughCache(t *testing.T) {
	ctx := context.Background()
	dest, _ := generate(t, scenario)

	store := blobstore.NewMemoryStore()
	store.Put("b", "x/v1/ad/GENE1/model_tissue_7.tl", []byte("model-7"))
	c := cache.New(t.TempDir(), store)

	m, err := Open(ctx, dest, WithCache(c))
	require.NoError(t, err)
	defer m.Close()

	local, ok, err := m.FilePath(ctx, "GENE1", "model_tissue_7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(c.Root(), "x", "v1", "ad", "GENE1", "model_tissue_7.tl"), local)

	data, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "model-7", string(data))

	// Second call is served from disk.
	_, _, err = m.FilePath(ctx, "GENE1", 7)
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.Stats().Misses)
	assert.EqualValues(t, 1, c.Stats().Hits)

	// Listed in the manifest but missing from the store.
	_, _, err = m.FilePath(ctx, "GENE2", 12)
	var nerr *genemanifest.NotFoundError
	assert.ErrorAs(t, err, &nerr)

	_, ok, err = m.FilePath(ctx, "GENE9", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFilePathWithoutCache(t *testing.T) {
	ctx := context.Background()
	dest, _ := generate(t, scenario)

	m, err := Open(ctx, dest)
	require.NoError(t, err)
	defer m.Close()

	_, _, err = m.FilePath(ctx, "GENE1", 7)
	var terr *genemanifest.TransportError
	assert.ErrorAs(t, err, &terr)
}

func TestGenerateFromBucketAndRemoteOpen(t *testing.T) {
	ctx := context.Background()

	store := blobstore.NewMemoryStore()
	store.Put("data", "study/v1/ad/GENE1/model_tissue_7.tl", []byte("m7"))
	store.Put("data", "study/v1/ad/GENE2/model_tissue_12.tl", []byte("m12"))
	store.Put("data", "study/README.md", []byte("readme"))

	dest := filepath.Join(t.TempDir(), "manifest.parquet")
	stats, err := GenerateFromBucket(ctx, store, "data", "study/", dest,
		WithCompression(columnar.CompressionZstd),
		WithIngestOptions(ingest.WithChunkSize(1)),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Valid)
	assert.Equal(t, 1, stats.Invalid)

	// Publish the manifest next to the data and open it remotely.
	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	store.Put("data", "manifests/manifest.parquet", raw)

	c := cache.New(t.TempDir(), store)
	m, err := Open(ctx, "s3://data/manifests/manifest.parquet", WithCache(c))
	require.NoError(t, err)
	defer m.Close()

	remote, ok, err := m.RemotePath(ctx, "GENE2", 12)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "study/v1/ad/GENE2/model_tissue_12.tl", remote)

	// Bare keys resolve in the manifest's bucket.
	local, ok, err := m.FilePath(ctx, "GENE2", 12)
	require.NoError(t, err)
	require.True(t, ok)
	data, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "m12", string(data))
}

func TestGenerateNoValidRecords(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "manifest.parquet")
	_, err := Generate(context.Background(), strings.NewReader("a\nb\n"), dest)

	var verr *genemanifest.ValidationError
	require.ErrorAs(t, err, &verr)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}
