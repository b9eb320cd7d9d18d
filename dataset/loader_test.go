package dataset

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/nicolas-legroux/tcgaExplorer/blobstore"
	"github.com/nicolas-legroux/tcgaExplorer/internal/compress"
	"github.com/nicolas-legroux/tcgaExplorer/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putCompressed(t *testing.T, store blobstore.BlobStore, name, content string) {
	t.Helper()
	data, err := compress.Compress(compress.FromName(name), []byte(content))
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), name, data))
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	putCompressed(t, store, "manifest.tsv",
		"LUAD\ttumor\tL1\tluad/l1.tsv.lz4\n"+
			"BRCA\ttumor\tB1\tbrca/b1.tsv\n"+
			"BRCA\tcontrol\tB1\tbrca/b1c.tsv.zst\n"+
			"KIRC\ttumor\tK1\tkirc/k1.tsv\n")
	putCompressed(t, store, "luad/l1.tsv.lz4", "gene\tvalue\nA\t1\nB\t2\n")
	putCompressed(t, store, "brca/b1.tsv", "A\t3\nB\t4\n")
	putCompressed(t, store, "brca/b1c.tsv.zst", "gene\tvalue\nA\t5\nB\t6\n")

	var logs bytes.Buffer
	loader := NewLoader(store,
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithConcurrency(2),
		WithResourceController(resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})),
	)

	ds, err := loader.Load(ctx, "manifest.tsv", DefaultLimits())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, ds.Genes)
	assert.Equal(t, []SampleID{
		{Cancer: "BRCA", Patient: "B1", Tumor: false},
		{Cancer: "BRCA", Patient: "B1", Tumor: true},
		{Cancer: "LUAD", Patient: "L1", Tumor: true},
	}, ds.Samples)
	assert.Equal(t, [][]float64{{5, 6}, {3, 4}, {1, 2}}, ds.Values)
	assert.Contains(t, logs.String(), "cohort loaded")
}

func TestLoader_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing manifest", func(t *testing.T) {
		_, err := NewLoader(blobstore.NewMemoryStore()).Load(ctx, "nope.tsv", Limits{})
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("missing sample", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putCompressed(t, store, "m.tsv", "BRCA\ttumor\tB1\tbrca/b1.tsv\n")
		_, err := NewLoader(store).Load(ctx, "m.tsv", Limits{})
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("gene mismatch", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putCompressed(t, store, "m.tsv", "BRCA\ttumor\tB1\tb1.tsv\nBRCA\ttumor\tB2\tb2.tsv\n")
		putCompressed(t, store, "b1.tsv", "A\t1\nB\t2\n")
		putCompressed(t, store, "b2.tsv", "B\t1\nA\t2\n")
		_, err := NewLoader(store).Load(ctx, "m.tsv", Limits{})
		assert.ErrorIs(t, err, ErrGeneMismatch)
	})

	t.Run("nothing selected", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putCompressed(t, store, "m.tsv", "KIRC\ttumor\tK1\tk1.tsv\n")
		_, err := NewLoader(store).Load(ctx, "m.tsv", DefaultLimits())
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("corrupt compressed sample", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putCompressed(t, store, "m.tsv", "BRCA\ttumor\tB1\tb1.tsv.zst\n")
		require.NoError(t, store.Put(ctx, "b1.tsv.zst", []byte("plain text")))
		_, err := NewLoader(store).Load(ctx, "m.tsv", Limits{})
		assert.Error(t, err)
	})
}

func TestSave_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	ds := &Dataset{
		Samples: []SampleID{
			{Cancer: "BRCA", Patient: "p1"},
			{Cancer: "BRCA", Patient: "p2", Tumor: true},
		},
		Genes:  []string{"A1BG|1", "TP53|7157"},
		Values: [][]float64{{0.125, 3}, {1e-7, 42.5}},
	}
	require.NoError(t, Save(ctx, store, "cohort/manifest.tsv", "cohort/", ds))

	names, err := store.List(ctx, "cohort/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"cohort/BRCA/control/p1.tsv",
		"cohort/BRCA/tumor/p2.tsv",
		"cohort/manifest.tsv",
	}, names)

	loaded, err := NewLoader(store).Load(ctx, "cohort/manifest.tsv", Limits{})
	require.NoError(t, err)
	assert.Equal(t, ds, loaded)
}
