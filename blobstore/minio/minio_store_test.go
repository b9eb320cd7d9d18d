package minio

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/nicolas-legroux/tcgaExplorer/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		prefix, name, key string
	}{
		{"", "brca/p1.tsv", "brca/p1.tsv"},
		{"cohorts/", "brca/p1.tsv", "cohorts/brca/p1.tsv"},
		{"cohorts", "manifest.tsv", "cohorts/manifest.tsv"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			key := joinKey(tt.prefix, tt.name)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.name, trimKey(tt.prefix, key))
		})
	}
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
}

// TestStore_Integration needs a running MinIO; set MINIO_ENDPOINT to enable it.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT not set")
	}

	client, err := NewClient(Config{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
	})
	require.NoError(t, err)

	ctx := context.Background()
	bucket := "tcga-explorer-test"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("TP53\t12.5\nBRCA1\t3.25\n")
	require.NoError(t, store.Put(ctx, "brca/p1.tsv", data))

	blob, err := store.Open(ctx, "brca/p1.tsv")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "TP53", string(buf))

	r, err := blob.ReadRange(ctx, 10, 5)
	require.NoError(t, err)
	part, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "BRCA1", string(part))

	w, err := store.Create(ctx, "brca/p2.tsv")
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrClosed)

	names, err := store.List(ctx, "brca/")
	require.NoError(t, err)
	assert.Equal(t, []string{"brca/p1.tsv", "brca/p2.tsv"}, names)

	require.NoError(t, store.Delete(ctx, "brca/p1.tsv"))
	require.NoError(t, store.Delete(ctx, "brca/p2.tsv"))

	_, err = store.Open(ctx, "brca/p1.tsv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
