package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/structor/ai/mock"
	"github.com/poiesic/structor/core"
	"github.com/poiesic/structor/vectorstore"
	"github.com/poiesic/structor/vectorstore/badger"
)

func newTestResponder(t *testing.T) (*Responder, *vectorstore.Store, *mock.MockCompleter) {
	t.Helper()

	backend, err := badger.NewMemoryBackend()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	store, err := vectorstore.NewStore(backend, vectorstore.WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(store.Release)

	completer := mock.NewMockCompleter()
	responder, err := NewResponder(store, completer)
	require.NoError(t, err)

	return responder, store, completer
}

func TestNewResponder(t *testing.T) {
	completer := mock.NewMockCompleter()

	responder, err := NewResponder(nil, completer)
	assert.Nil(t, responder)
	assert.ErrorIs(t, err, ErrStoreRequired)

	backend, err := badger.NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()
	store, err := vectorstore.NewStore(backend)
	require.NoError(t, err)
	defer store.Release()

	responder, err = NewResponder(store, nil)
	assert.Nil(t, responder)
	assert.ErrorIs(t, err, ErrCompleterRequired)
}

func TestResponder_Respond(t *testing.T) {
	t.Run("grounded reply", func(t *testing.T) {
		responder, store, completer := newTestResponder(t)
		ctx := context.Background()

		_, err := store.Ingest(ctx, "t1", []core.Record{
			{"name": "Brownie", "price": "120", "category": "dessert"},
		})
		require.NoError(t, err)

		completer.Response = "Yes! Our Brownie costs 120."

		reply, err := responder.Respond(ctx, "t1", "how much is the brownie?")
		require.NoError(t, err)
		assert.Equal(t, "Yes! Our Brownie costs 120.", reply)
		assert.Equal(t, 1, completer.CallCount())

		prompt := completer.LastPrompt()
		assert.Contains(t, prompt, "Brownie")
		assert.Contains(t, prompt, "how much is the brownie?")
		assert.Contains(t, prompt, "customer service")
	})

	t.Run("no data yields canned reply without completion", func(t *testing.T) {
		responder, _, completer := newTestResponder(t)

		reply, err := responder.Respond(context.Background(), "ghost", "anything there?")
		require.NoError(t, err)
		assert.Equal(t, noDataReply, reply)
		assert.Equal(t, 0, completer.CallCount())
	})

	t.Run("completer failure surfaces as error", func(t *testing.T) {
		responder, store, completer := newTestResponder(t)
		ctx := context.Background()

		_, err := store.Ingest(ctx, "t1", []core.Record{{"name": "Brownie", "price": "120"}})
		require.NoError(t, err)

		wantErr := errors.New("quota exceeded")
		completer.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			return "", wantErr
		}

		_, err = responder.Respond(ctx, "t1", "price?")
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("input validation", func(t *testing.T) {
		responder, _, _ := newTestResponder(t)
		ctx := context.Background()

		_, err := responder.Respond(ctx, "", "hello")
		assert.ErrorIs(t, err, vectorstore.ErrTenantRequired)

		_, err = responder.Respond(ctx, "t1", "   ")
		assert.ErrorIs(t, err, ErrMessageRequired)
	})
}

func TestFormatMatches(t *testing.T) {
	matches := []vectorstore.Match{
		{Document: `{"name":"Brownie","price":"120"}`},
		{Document: "not json"},
	}

	formatted := formatMatches(matches)
	assert.Contains(t, formatted, "Item 1:")
	assert.Contains(t, formatted, "\"name\": \"Brownie\"")
	assert.Contains(t, formatted, "Item 2:")
	assert.Contains(t, formatted, "not json")
}
