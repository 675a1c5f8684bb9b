package s3

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	key := os.Getenv("S3_KEY")
	if bucket == "" || key == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET or S3_KEY not set")
	}

	ctx := context.Background()
	store, err := New(ctx)
	require.NoError(t, err)

	t.Run("Download", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "object"))
		require.NoError(t, err)
		defer f.Close()

		n, err := store.Download(ctx, bucket, key, f)
		require.NoError(t, err)
		assert.Positive(t, n)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, bucket, "genemanifest-nonexistent-key")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
