package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	buf := []byte("hello")
	require.NoError(t, store.Put(ctx, "a/1", buf))
	buf[0] = 'j'

	w, err := store.Create(ctx, "a/2")
	require.NoError(t, err)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1"}, names, "blob is not visible before Close")

	require.NoError(t, w.Close())
	names, err = store.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "a/2"}, names)

	data, err := ReadAll(ctx, store, "a/1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data), "stored data is a copy")

	b, err := store.Open(ctx, "a/2")
	require.NoError(t, err)
	r, err := b.ReadRange(ctx, 1, 3)
	require.NoError(t, err)
	part, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "orl", string(part))

	p := make([]byte, 10)
	n, err := b.ReadAt(ctx, p, 2)
	assert.Equal(t, 3, n)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, store.Delete(ctx, "a/1"))
	_, err = store.Open(ctx, "a/1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	_, err := store.Open(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Put(ctx, "x", nil), context.Canceled)
}
