package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "docuchat/client/internal/errors"
	"docuchat/client/internal/gateway"
	"docuchat/client/internal/interfaces/mocks"
	"docuchat/client/internal/model"
	"docuchat/client/internal/store"
)

func setupDocumentStore(t *testing.T) (*store.DocumentStore, *mocks.MockGateway) {
	gw := mocks.NewMockGateway(t)
	return store.NewDocumentStore(gw), gw
}

func TestDocumentStore_FetchDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the catalog with the fixed page size", func(t *testing.T) {
		docStore, gw := setupDocumentStore(t)
		expected := []model.Document{{ID: "d1", Title: "Intro"}}
		gw.On("ListDocuments", ctx, "", store.PageSize).Return(expected, nil).Once()

		require.NoError(t, docStore.FetchDocuments(ctx, ""))
		assert.Equal(t, expected, docStore.Documents())
	})

	t.Run("passes the category filter through", func(t *testing.T) {
		docStore, gw := setupDocumentStore(t)
		gw.On("ListDocuments", ctx, "guides", store.PageSize).Return([]model.Document{}, nil).Once()

		require.NoError(t, docStore.FetchDocuments(ctx, "guides"))
	})

	t.Run("failure keeps the previous catalog", func(t *testing.T) {
		docStore, gw := setupDocumentStore(t)
		expected := []model.Document{{ID: "d1"}}
		gw.On("ListDocuments", ctx, "", store.PageSize).Return(expected, nil).Once()
		require.NoError(t, docStore.FetchDocuments(ctx, ""))

		gw.On("ListDocuments", ctx, "", store.PageSize).Return(nil, errors.New("server down")).Once()
		require.Error(t, docStore.FetchDocuments(ctx, ""))
		assert.Equal(t, expected, docStore.Documents())
		assert.Equal(t, "server down", docStore.Err())
	})
}

func TestDocumentStore_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("prepends the returned record", func(t *testing.T) {
		docStore, gw := setupDocumentStore(t)
		gw.On("ListDocuments", ctx, "", store.PageSize).Return([]model.Document{{ID: "d0"}}, nil).Once()
		require.NoError(t, docStore.FetchDocuments(ctx, ""))

		uploaded := &model.Document{ID: "d1", Title: "Intro", Processed: false}
		meta := gateway.DocumentMetadata{Title: "Intro"}
		gw.On("UploadDocument", ctx, "intro.pdf", mock.Anything, meta).Return(uploaded, nil).Once()

		doc, err := docStore.Upload(ctx, "intro.pdf", strings.NewReader("bytes"), meta)
		require.NoError(t, err)
		assert.False(t, doc.Processed, "fresh upload starts unprocessed")

		docs := docStore.Documents()
		require.Len(t, docs, 2)
		assert.Equal(t, "d1", docs[0].ID, "new document must be prepended")
	})

	t.Run("oversized metadata is rejected locally", func(t *testing.T) {
		docStore, _ := setupDocumentStore(t)
		meta := gateway.DocumentMetadata{Title: strings.Repeat("x", 201)}

		_, err := docStore.Upload(ctx, "intro.pdf", strings.NewReader("bytes"), meta)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}

func TestDocumentStore_ToggleSelection(t *testing.T) {
	docStore, _ := setupDocumentStore(t)

	// Membership after n toggles equals the parity of n.
	for i := 1; i <= 5; i++ {
		docStore.ToggleSelection("d1")
		assert.Equal(t, i%2 == 1, docStore.IsSelected("d1"), "toggle %d", i)
	}
	assert.Equal(t, []string{"d1"}, docStore.Selected())

	docStore.ToggleSelection("d2")
	docStore.ToggleSelection("d1")
	assert.Equal(t, []string{"d2"}, docStore.Selected())
}

func TestDocumentStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes from catalog, selection, and current pointer", func(t *testing.T) {
		docStore, gw := setupDocumentStore(t)
		gw.On("ListDocuments", ctx, "", store.PageSize).
			Return([]model.Document{{ID: "d1"}, {ID: "d2"}}, nil).Once()
		require.NoError(t, docStore.FetchDocuments(ctx, ""))

		gw.On("GetDocument", ctx, "d1").Return(&model.Document{ID: "d1"}, nil).Once()
		_, err := docStore.OpenDocument(ctx, "d1")
		require.NoError(t, err)
		docStore.ToggleSelection("d1")
		docStore.ToggleSelection("d2")

		gw.On("DeleteDocument", ctx, "d1").Return(nil).Once()
		require.NoError(t, docStore.Delete(ctx, "d1"))

		assert.Nil(t, docStore.CurrentDocument(), "current pointer must clear when it matches")
		assert.Equal(t, []string{"d2"}, docStore.Selected())
		docs := docStore.Documents()
		require.Len(t, docs, 1)
		assert.Equal(t, "d2", docs[0].ID)
	})

	t.Run("deleting another document leaves the current pointer", func(t *testing.T) {
		docStore, gw := setupDocumentStore(t)
		gw.On("GetDocument", ctx, "d1").Return(&model.Document{ID: "d1"}, nil).Once()
		_, err := docStore.OpenDocument(ctx, "d1")
		require.NoError(t, err)

		gw.On("DeleteDocument", ctx, "d2").Return(nil).Once()
		require.NoError(t, docStore.Delete(ctx, "d2"))
		require.NotNil(t, docStore.CurrentDocument())
		assert.Equal(t, "d1", docStore.CurrentDocument().ID)
	})

	t.Run("server failure mutates nothing", func(t *testing.T) {
		docStore, gw := setupDocumentStore(t)
		gw.On("ListDocuments", ctx, "", store.PageSize).Return([]model.Document{{ID: "d1"}}, nil).Once()
		require.NoError(t, docStore.FetchDocuments(ctx, ""))
		docStore.ToggleSelection("d1")

		gw.On("DeleteDocument", ctx, "d1").Return(errors.New("forbidden")).Once()
		require.Error(t, docStore.Delete(ctx, "d1"))
		assert.True(t, docStore.IsSelected("d1"))
		assert.Len(t, docStore.Documents(), 1)
	})
}

func TestDocumentStore_Reindex(t *testing.T) {
	ctx := context.Background()
	docStore, gw := setupDocumentStore(t)

	gw.On("ListDocuments", ctx, "", store.PageSize).
		Return([]model.Document{{ID: "d1", Processed: true}}, nil).Once()
	require.NoError(t, docStore.FetchDocuments(ctx, ""))

	gw.On("ReindexDocument", ctx, "d1").Return(&model.Document{ID: "d1", Processed: false}, nil).Once()
	doc, err := docStore.Reindex(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, doc.Processed)
	assert.False(t, docStore.Documents()[0].Processed, "catalog entry must be reconciled")
}

func TestDocumentStore_Update(t *testing.T) {
	ctx := context.Background()
	docStore, gw := setupDocumentStore(t)

	gw.On("ListDocuments", ctx, "", store.PageSize).
		Return([]model.Document{{ID: "d1", Title: "Old"}}, nil).Once()
	require.NoError(t, docStore.FetchDocuments(ctx, ""))

	meta := gateway.DocumentMetadata{Title: "New"}
	gw.On("UpdateDocument", ctx, "d1", meta).Return(&model.Document{ID: "d1", Title: "New"}, nil).Once()

	doc, err := docStore.Update(ctx, "d1", meta)
	require.NoError(t, err)
	assert.Equal(t, "New", doc.Title)
	assert.Equal(t, "New", docStore.Documents()[0].Title)
}
