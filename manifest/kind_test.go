package manifest

import (
	"testing"

	"github.com/hupe1980/genemanifest/ingest"
	"github.com/hupe1980/genemanifest/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractIsWellFormed(t *testing.T) {
	require.NoError(t, Contract.Check())
	assert.Equal(t, []string{ColumnGeneID, ColumnTissueID, ColumnFilePath}, Contract.ColumnNames())
}

func TestKind_Extract(t *testing.T) {
	k, err := NewKind("")
	require.NoError(t, err)

	row, ok := k.Extract("s3://b/x/v1/ad/GENE1/model_tissue_7.tl")
	require.True(t, ok)
	assert.Equal(t, schema.Row{"GENE1", int64(7), "s3://b/x/v1/ad/GENE1/model_tissue_7.tl"}, row)

	for _, line := range []string{
		"s3://b/x/other/file.txt",
		"s3://b/x/v1/ad/GENE1/model_tissue_x.tl",
		"s3://b/x/v1/ad/GENE1/model_tissue_7.tl.bak",
		"s3://b/x/v1/ad/a/b/model_tissue_7.tl",
	} {
		_, ok := k.Extract(line)
		assert.False(t, ok, line)
	}
}

func TestKind_CustomPattern(t *testing.T) {
	k, err := NewKind(`^([A-Z]+)-(\d+)$`)
	require.NoError(t, err)

	row, ok := k.Extract("ABC-3")
	require.True(t, ok)
	assert.Equal(t, schema.Row{"ABC", int64(3), "ABC-3"}, row)

	_, err = NewKind(`^([A-Z]+)$`)
	assert.Error(t, err, "pattern without a tissue group")
}

func TestKind_TransformSortsByGene(t *testing.T) {
	k, err := NewKind("")
	require.NoError(t, err)

	table := &ingest.Table{
		Columns: k.Columns(),
		Rows: []schema.Row{
			{"B", int64(1), "p1"},
			{"A", int64(2), "p2"},
			{"B", int64(0), "p3"},
		},
	}
	got := k.Transform(table)
	assert.Equal(t, []schema.Row{
		{"A", int64(2), "p2"},
		{"B", int64(1), "p1"},
		{"B", int64(0), "p3"},
	}, got.Rows)
}

func TestKind_Scan(t *testing.T) {
	k, err := NewKind("")
	require.NoError(t, err)

	rec, err := k.Scan(schema.Row{"GENE1", int32(7), "p"})
	require.NoError(t, err)
	assert.Equal(t, Record{GeneID: "GENE1", TissueID: 7, FilePath: "p"}, rec)
	assert.Equal(t, "Record(gene_id=GENE1, tissue_id=7, file_path=p)", rec.String())

	_, err = k.Scan(schema.Row{"GENE1", "7", "p"})
	assert.Error(t, err)
	_, err = k.Scan(schema.Row{"GENE1"})
	assert.Error(t, err)
}
