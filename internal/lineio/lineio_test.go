package lineio

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/hupe1980/genemanifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCodec(t *testing.T) {
	assert.Equal(t, CodecGzip, DetectCodec("keys.txt.gz"))
	assert.Equal(t, CodecZstd, DetectCodec("keys.ZST"))
	assert.Equal(t, CodecLZ4, DetectCodec("keys.lz4"))
	assert.Equal(t, CodecNone, DetectCodec("keys.txt"))
}

func TestRoundTrip(t *testing.T) {
	const content = "a/v1/ad/BRCA1/model_tissue_7.tl\na/v1/ad/TP53/model_tissue_3.tl\n"

	for _, name := range []string{"keys.txt", "keys.txt.gz", "keys.txt.zst", "keys.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			w, err := Create(path)
			require.NoError(t, err)
			_, err = io.WriteString(w, content)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := Open(path)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, content, string(got))
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var nf *genemanifest.NotFoundError
	assert.True(t, errors.As(err, &nf))
}
