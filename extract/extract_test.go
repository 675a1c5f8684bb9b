package extract

import (
	"testing"

	"github.com/hupe1980/genemanifest/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPattern = `.*/v1/ad/([^/]+)/model_tissue_(\d+)\.tl$`

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := New(testPattern,
		Field{Column: "gene_id", Group: 1, Coerce: String},
		Field{Column: "tissue_id", Group: 2, Coerce: Int},
		Field{Column: "file_path", Group: 0, Coerce: String},
	)
	require.NoError(t, err)
	return e
}

func TestExtract_Match(t *testing.T) {
	e := newTestExtractor(t)

	row, ok := e.Extract("a/v1/ad/BRCA1/model_tissue_7.tl")
	require.True(t, ok)
	assert.Equal(t, schema.Row{"BRCA1", int64(7), "a/v1/ad/BRCA1/model_tissue_7.tl"}, row)

	assert.Equal(t, []string{"gene_id", "tissue_id", "file_path"}, e.Columns())
	assert.Equal(t, testPattern, e.Pattern())
}

func TestExtract_NoMatch(t *testing.T) {
	e := newTestExtractor(t)

	for _, s := range []string{
		"garbage/line",
		"",
		"a/v1/ad/BRCA1/model_tissue_x.tl",
		"a/v1/ad/BRCA1/model_tissue_7.tl.bak",
		"a/v2/ad/BRCA1/model_tissue_7.tl",
	} {
		_, ok := e.Extract(s)
		assert.False(t, ok, s)
	}
}

func TestExtract_CoercionFailureIsNoMatch(t *testing.T) {
	e := newTestExtractor(t)

	// Matches \d+ but overflows int64.
	_, ok := e.Extract("a/v1/ad/BRCA1/model_tissue_99999999999999999999.tl")
	assert.False(t, ok)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(`(`, Field{Column: "a", Group: 0, Coerce: String})
	assert.Error(t, err)

	_, err = New(`(a)`)
	assert.Error(t, err)

	_, err = New(`(a)`, Field{Column: "a", Group: 2, Coerce: String})
	assert.Error(t, err)

	_, err = New(`(a)`, Field{Column: "a", Group: 1})
	assert.Error(t, err)

	assert.Panics(t, func() { MustNew(`(`) })
}
