package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/structor/vectorstore"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestBackend_CollectionLifecycle(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	exists, err := backend.HasCollection(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, backend.CreateCollection(ctx, "c1", map[string]any{"tenant": "t1"}))

	exists, err = backend.HasCollection(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, exists)

	err = backend.CreateCollection(ctx, "c1", nil)
	assert.ErrorIs(t, err, vectorstore.ErrCollectionExists)

	deleted, err := backend.DeleteCollection(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = backend.DeleteCollection(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestBackend_UpsertRequiresCollection(t *testing.T) {
	backend := newTestBackend(t)

	err := backend.Upsert(context.Background(), "missing", []vectorstore.Item{
		{ID: "1", Vector: []float32{1, 0}, Document: "doc"},
	})
	assert.ErrorIs(t, err, vectorstore.ErrCollectionNotFound)
}

func TestBackend_QueryRequiresCollection(t *testing.T) {
	backend := newTestBackend(t)

	_, err := backend.Query(context.Background(), "missing", []float32{1, 0}, 5)
	assert.ErrorIs(t, err, vectorstore.ErrCollectionNotFound)
}

func TestBackend_QueryOrdering(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.CreateCollection(ctx, "c1", nil))
	require.NoError(t, backend.Upsert(ctx, "c1", []vectorstore.Item{
		{ID: "near", Vector: []float32{1, 0, 0}, Document: "near", Metadata: map[string]any{"name": "near"}},
		{ID: "mid", Vector: []float32{0.7071, 0.7071, 0}, Document: "mid"},
		{ID: "far", Vector: []float32{0, 1, 0}, Document: "far"},
	}))

	matches, err := backend.Query(ctx, "c1", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "near", matches[0].Document)
	assert.Equal(t, "mid", matches[1].Document)
	assert.Equal(t, "far", matches[2].Document)
	assert.InDelta(t, 0, matches[0].Distance, 1e-6)
	assert.Equal(t, "near", matches[0].Metadata["name"])

	matches, err = backend.Query(ctx, "c1", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestBackend_UpsertReplacesByID(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.CreateCollection(ctx, "c1", nil))
	require.NoError(t, backend.Upsert(ctx, "c1", []vectorstore.Item{
		{ID: "1", Vector: []float32{1, 0}, Document: "first"},
	}))
	require.NoError(t, backend.Upsert(ctx, "c1", []vectorstore.Item{
		{ID: "1", Vector: []float32{1, 0}, Document: "second"},
	}))

	matches, err := backend.Query(ctx, "c1", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "second", matches[0].Document)
}

func TestBackend_DeleteRemovesItems(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.CreateCollection(ctx, "c1", nil))
	require.NoError(t, backend.Upsert(ctx, "c1", []vectorstore.Item{
		{ID: "1", Vector: []float32{1, 0}, Document: "doc"},
	}))

	deleted, err := backend.DeleteCollection(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, deleted)

	require.NoError(t, backend.CreateCollection(ctx, "c1", nil))
	matches, err := backend.Query(ctx, "c1", []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestBackend_CollectionNameIsolation(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.CreateCollection(ctx, "ten", nil))
	require.NoError(t, backend.CreateCollection(ctx, "ten2", nil))
	require.NoError(t, backend.Upsert(ctx, "ten", []vectorstore.Item{
		{ID: "1", Vector: []float32{1, 0}, Document: "ten-doc"},
	}))
	require.NoError(t, backend.Upsert(ctx, "ten2", []vectorstore.Item{
		{ID: "1", Vector: []float32{1, 0}, Document: "ten2-doc"},
	}))

	deleted, err := backend.DeleteCollection(ctx, "ten")
	require.NoError(t, err)
	assert.True(t, deleted)

	matches, err := backend.Query(ctx, "ten2", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ten2-doc", matches[0].Document)
}
