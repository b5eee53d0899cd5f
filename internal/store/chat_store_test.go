package store_test

import (
	"context"
	"errors"
	"sync"
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

func setupChatStore(t *testing.T) (*store.ChatStore, *mocks.MockGateway) {
	gw := mocks.NewMockGateway(t)
	return store.NewChatStore(gw, 0), gw
}

// selectChat is a helper that puts the store into a state with a current
// chat and an empty transcript.
func selectChat(t *testing.T, chatStore *store.ChatStore, gw *mocks.MockGateway, chat model.Chat) {
	gw.On("CreateChat", mock.Anything, chat.Title).Return(&chat, nil).Once()
	_, err := chatStore.CreateChat(context.Background(), chat.Title)
	require.NoError(t, err)
}

func TestChatStore_FetchChats(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the list", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		expected := []model.Chat{{ID: "c1", Title: "First"}}
		gw.On("ListChats", ctx).Return(expected, nil).Once()

		require.NoError(t, chatStore.FetchChats(ctx))
		assert.Equal(t, expected, chatStore.Chats())
	})

	t.Run("failure keeps the previous list and records the error", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		expected := []model.Chat{{ID: "c1"}}
		gw.On("ListChats", ctx).Return(expected, nil).Once()
		require.NoError(t, chatStore.FetchChats(ctx))

		gw.On("ListChats", ctx).Return(nil, errors.New("server down")).Once()
		err := chatStore.FetchChats(ctx)
		require.Error(t, err)
		assert.Equal(t, expected, chatStore.Chats(), "previous list must survive a failed fetch")
		assert.Equal(t, "server down", chatStore.Err())
	})
}

func TestChatStore_OpenChat(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces current chat and transcript together", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		full := &model.FullChat{
			Chat:     model.Chat{ID: "c1", Title: "First"},
			Messages: []model.Message{{ID: "m1", ChatID: "c1", Role: model.RoleUser, Content: "hi"}},
		}
		gw.On("GetChat", ctx, "c1").Return(full, nil).Once()

		require.NoError(t, chatStore.OpenChat(ctx, "c1"))
		require.NotNil(t, chatStore.CurrentChat())
		assert.Equal(t, "c1", chatStore.CurrentChat().ID)
		require.Len(t, chatStore.Messages(), 1)
		assert.Equal(t, "c1", chatStore.Messages()[0].ChatID)
	})

	t.Run("stale response loses to the newer call", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		oldFull := &model.FullChat{
			Chat:     model.Chat{ID: "old"},
			Messages: []model.Message{{ID: "m-old", ChatID: "old"}},
		}
		newFull := &model.FullChat{
			Chat:     model.Chat{ID: "new"},
			Messages: []model.Message{{ID: "m-new", ChatID: "new"}},
		}

		// The first open blocks until the second has completed, simulating
		// an out-of-order response arrival. started closes inside the mock,
		// after the first call has claimed its place in line.
		release := make(chan struct{})
		started := make(chan struct{})
		gw.On("GetChat", mock.Anything, "old").Run(func(mock.Arguments) {
			close(started)
			<-release
		}).Return(oldFull, nil).Once()
		gw.On("GetChat", mock.Anything, "new").Return(newFull, nil).Once()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = chatStore.OpenChat(ctx, "old")
		}()
		<-started
		require.NoError(t, chatStore.OpenChat(ctx, "new"))
		close(release)
		wg.Wait()

		require.NotNil(t, chatStore.CurrentChat())
		assert.Equal(t, "new", chatStore.CurrentChat().ID, "stale response must not overwrite newer state")
		require.Len(t, chatStore.Messages(), 1)
		assert.Equal(t, "new", chatStore.Messages()[0].ChatID, "transcript must match current chat")
	})
}

func TestChatStore_CreateChat(t *testing.T) {
	ctx := context.Background()

	t.Run("prepends, selects, and empties the transcript", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		previous := []model.Chat{{ID: "c0", Title: "Existing"}}
		gw.On("ListChats", ctx).Return(previous, nil).Once()
		require.NoError(t, chatStore.FetchChats(ctx))

		created := &model.Chat{ID: "c1", Title: "Notes"}
		gw.On("CreateChat", ctx, "Notes").Return(created, nil).Once()

		chat, err := chatStore.CreateChat(ctx, "Notes")
		require.NoError(t, err)
		assert.Equal(t, "c1", chat.ID)

		chats := chatStore.Chats()
		require.Len(t, chats, 2)
		assert.Equal(t, "c1", chats[0].ID, "new chat must be prepended")
		assert.Equal(t, "c0", chats[1].ID)
		require.NotNil(t, chatStore.CurrentChat())
		assert.Equal(t, "c1", chatStore.CurrentChat().ID)
		assert.Empty(t, chatStore.Messages())
	})

	t.Run("failure records the error", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		gw.On("CreateChat", ctx, "Notes").Return(nil, errors.New("quota exceeded")).Once()

		_, err := chatStore.CreateChat(ctx, "Notes")
		require.Error(t, err)
		assert.Equal(t, "quota exceeded", chatStore.Err())
		assert.Nil(t, chatStore.CurrentChat())
	})
}

func TestChatStore_DeleteChat(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting the current chat clears pointer and transcript", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		selectChat(t, chatStore, gw, model.Chat{ID: "c1", Title: "Doomed"})

		gw.On("SendMessage", ctx, "c1", mock.Anything).
			Return(&model.Message{ID: "m2", ChatID: "c1", Role: model.RoleAssistant, Content: "hello"}, nil).Once()
		_, err := chatStore.SendMessage(ctx, "hi", nil)
		require.NoError(t, err)
		require.NotEmpty(t, chatStore.Messages())

		gw.On("DeleteChat", ctx, "c1").Return(nil).Once()
		require.NoError(t, chatStore.DeleteChat(ctx, "c1"))

		assert.Nil(t, chatStore.CurrentChat())
		assert.Empty(t, chatStore.Messages())
		assert.Empty(t, chatStore.Chats())
	})

	t.Run("deleting another chat leaves the selection alone", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		gw.On("ListChats", ctx).Return([]model.Chat{{ID: "c1"}, {ID: "c2"}}, nil).Once()
		require.NoError(t, chatStore.FetchChats(ctx))
		full := &model.FullChat{Chat: model.Chat{ID: "c1"}}
		gw.On("GetChat", ctx, "c1").Return(full, nil).Once()
		require.NoError(t, chatStore.OpenChat(ctx, "c1"))

		gw.On("DeleteChat", ctx, "c2").Return(nil).Once()
		require.NoError(t, chatStore.DeleteChat(ctx, "c2"))

		require.NotNil(t, chatStore.CurrentChat())
		assert.Equal(t, "c1", chatStore.CurrentChat().ID)
		require.Len(t, chatStore.Chats(), 1)
	})
}

func TestChatStore_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("no active chat fails before mutating state", func(t *testing.T) {
		chatStore, _ := setupChatStore(t)

		_, err := chatStore.SendMessage(ctx, "What is X?", nil)
		assert.ErrorIs(t, err, app_errors.ErrNoActiveChat)
		assert.Empty(t, chatStore.Messages(), "precondition failure must not append anything")
	})

	t.Run("success appends pending user message then assistant reply", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		selectChat(t, chatStore, gw, model.Chat{ID: "c1"})

		reply := &model.Message{
			ID: "m2", ChatID: "c1", Role: model.RoleAssistant, Content: "X is ...",
			Metadata: &model.MessageMetadata{Sources: []model.Source{{DocumentID: "d1"}}},
		}
		gw.On("SendMessage", ctx, "c1", mock.MatchedBy(func(req gateway.AskRequest) bool {
			return req.Query == "What is X?" && req.TopK == store.DefaultTopK && len(req.DocumentIDs) == 1
		})).Return(reply, nil).Once()

		got, err := chatStore.SendMessage(ctx, "What is X?", []string{"d1"})
		require.NoError(t, err)
		assert.Equal(t, "m2", got.ID)

		messages := chatStore.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, model.RoleUser, messages[0].Role)
		assert.Equal(t, "What is X?", messages[0].Content)
		assert.NotEmpty(t, messages[0].ID, "optimistic message carries a client-generated id")
		assert.False(t, messages[0].Pending, "confirmed user message must not stay pending")
		assert.Equal(t, model.RoleAssistant, messages[1].Role)
		require.NotNil(t, messages[1].Metadata)
		assert.Equal(t, "d1", messages[1].Metadata.Sources[0].DocumentID)
	})

	t.Run("failure keeps the optimistic message pending forever", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		selectChat(t, chatStore, gw, model.Chat{ID: "c1"})

		gw.On("SendMessage", ctx, "c1", mock.Anything).Return(nil, errors.New("model overloaded")).Once()

		_, err := chatStore.SendMessage(ctx, "What is X?", nil)
		require.Error(t, err)

		messages := chatStore.Messages()
		require.Len(t, messages, 1, "optimistic user message is never rolled back")
		assert.Equal(t, model.RoleUser, messages[0].Role)
		assert.True(t, messages[0].Pending, "unconfirmed message stays tagged pending")
		assert.Equal(t, "model overloaded", chatStore.Err())
	})

	t.Run("empty query is a local precondition error", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		selectChat(t, chatStore, gw, model.Chat{ID: "c1"})

		_, err := chatStore.SendMessage(ctx, "", nil)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.Empty(t, chatStore.Messages())
	})

	t.Run("reply for a chat deselected mid-flight is not appended", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		selectChat(t, chatStore, gw, model.Chat{ID: "c1"})

		reply := &model.Message{ID: "m2", ChatID: "c1", Role: model.RoleAssistant}
		gw.On("SendMessage", mock.Anything, "c1", mock.Anything).
			Run(func(mock.Arguments) {
				// Switch chats while the question is in flight.
				gw.On("GetChat", mock.Anything, "c2").
					Return(&model.FullChat{Chat: model.Chat{ID: "c2"}}, nil).Once()
				require.NoError(t, chatStore.OpenChat(ctx, "c2"))
			}).
			Return(reply, nil).Once()

		_, err := chatStore.SendMessage(ctx, "hi", nil)
		require.NoError(t, err)
		for _, msg := range chatStore.Messages() {
			assert.NotEqual(t, "m2", msg.ID, "reply for a stale chat must not enter the transcript")
		}
	})
}

func TestChatStore_RefreshMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("reloads the current transcript", func(t *testing.T) {
		chatStore, gw := setupChatStore(t)
		selectChat(t, chatStore, gw, model.Chat{ID: "c1"})

		fresh := []model.Message{{ID: "m1", ChatID: "c1", Role: model.RoleUser, Content: "hi"}}
		gw.On("ListMessages", ctx, "c1").Return(fresh, nil).Once()

		require.NoError(t, chatStore.RefreshMessages(ctx))
		assert.Equal(t, fresh, chatStore.Messages())
	})

	t.Run("without a current chat it raises the precondition error", func(t *testing.T) {
		chatStore, _ := setupChatStore(t)
		assert.ErrorIs(t, chatStore.RefreshMessages(ctx), app_errors.ErrNoActiveChat)
	})
}
