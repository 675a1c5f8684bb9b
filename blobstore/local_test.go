package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLocalStore_OpenAndList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bucket", "a", "v1", "ad", "BRCA1", "model_tissue_7.tl"), "brca1")
	writeFile(t, filepath.Join(root, "bucket", "a", "v1", "ad", "TP53", "model_tissue_3.tl"), "tp53")
	writeFile(t, filepath.Join(root, "bucket", "other.txt"), "x")

	store := NewLocalStore(root)
	ctx := context.Background()

	rc, err := store.Open(ctx, "bucket", "a/v1/ad/BRCA1/model_tissue_7.tl")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "brca1", string(data))

	_, err = store.Open(ctx, "bucket", "a/missing.tl")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Open(ctx, "bucket", "../../etc/passwd")
	assert.Error(t, err)

	keys, err := store.List(ctx, "bucket", "a/v1/ad/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a/v1/ad/",
		"a/v1/ad/BRCA1/",
		"a/v1/ad/BRCA1/model_tissue_7.tl",
		"a/v1/ad/TP53/",
		"a/v1/ad/TP53/model_tissue_3.tl",
	}, keys)

	_, err = store.List(ctx, "nope", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("hello")
	store.Put("b", "k/1", payload)
	store.Put("b", "k/2", []byte("world"))
	payload[0] = 'X'

	rc, err := store.Open(ctx, "b", "k/1")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = store.Open(ctx, "b", "k/3")
	assert.ErrorIs(t, err, ErrNotFound)

	keys, err := store.List(ctx, "b", "k/")
	require.NoError(t, err)
	assert.Equal(t, []string{"k/1", "k/2"}, keys)
}
