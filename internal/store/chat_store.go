package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "docuchat/client/internal/errors"
	"docuchat/client/internal/gateway"
	"docuchat/client/internal/interfaces"
	"docuchat/client/internal/model"
)

// DefaultTopK is the retrieval breadth sent with a question when the
// caller does not override it.
const DefaultTopK = 5

// ChatStore holds the conversation list, the selected conversation and its
// transcript. The transcript always belongs to the current chat: switching
// chats replaces both in one locked transition, and responses from
// superseded fetches are dropped via a generation counter rather than
// applied last-write-wins.
type ChatStore struct {
	gw   interfaces.Gateway
	topK int

	mu       sync.Mutex
	chats    []model.Chat
	current  *model.Chat
	messages []model.Message
	lastErr  string
	listSeq  uint64
	openSeq  uint64
}

func NewChatStore(gw interfaces.Gateway, topK int) *ChatStore {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &ChatStore{gw: gw, topK: topK}
}

// FetchChats replaces the conversation list. On failure the previous list
// is left untouched and the error message is recorded.
func (s *ChatStore) FetchChats(ctx context.Context) error {
	s.mu.Lock()
	s.listSeq++
	seq := s.listSeq
	s.mu.Unlock()

	chats, err := s.gw.ListChats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.listSeq {
		// A newer fetch started while this one was in flight.
		return nil
	}
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.chats = chats
	s.lastErr = ""
	return nil
}

// OpenChat selects a conversation and loads its transcript. Current chat
// and messages change together under one lock, so a reader can never see a
// transcript that belongs to a different chat.
func (s *ChatStore) OpenChat(ctx context.Context, chatID string) error {
	s.mu.Lock()
	s.openSeq++
	seq := s.openSeq
	s.mu.Unlock()

	full, err := s.gw.GetChat(ctx, chatID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.openSeq {
		return nil
	}
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	chat := full.Chat
	s.current = &chat
	s.messages = append([]model.Message(nil), full.Messages...)
	s.lastErr = ""
	return nil
}

// CreateChat creates a conversation, prepends it to the list and selects
// it with an empty transcript. The created chat is returned for immediate
// use.
func (s *ChatStore) CreateChat(ctx context.Context, title string) (*model.Chat, error) {
	chat, err := s.gw.CreateChat(ctx, title)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.chats = append([]model.Chat{*chat}, s.chats...)
	selected := *chat
	s.current = &selected
	s.messages = []model.Message{}
	s.lastErr = ""
	// Invalidate any in-flight OpenChat so a stale transcript cannot
	// replace the fresh empty one.
	s.openSeq++
	s.mu.Unlock()
	return chat, nil
}

// DeleteChat removes a conversation. When it was the current one, the
// current pointer and the transcript are cleared in the same transition.
func (s *ChatStore) DeleteChat(ctx context.Context, chatID string) error {
	if err := s.gw.DeleteChat(ctx, chatID); err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.chats[:0]
	for _, chat := range s.chats {
		if chat.ID != chatID {
			kept = append(kept, chat)
		}
	}
	s.chats = kept
	if s.current != nil && s.current.ID == chatID {
		s.current = nil
		s.messages = nil
		s.openSeq++
	}
	s.lastErr = ""
	return nil
}

// SendMessage is two-phase. A locally built user message (pending, client
// id, current timestamp) is appended before the network call so the user's
// input is never lost to latency, and it is not rolled back on failure. On
// success the pending flag clears and the assistant's reply is appended;
// on failure the error is recorded and returned.
//
// ErrNoActiveChat is raised before the optimistic append when no chat is
// selected.
func (s *ChatStore) SendMessage(ctx context.Context, query string, documentIDs []string) (*model.Message, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, app_errors.ErrNoActiveChat
	}
	if query == "" {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: query must not be empty", app_errors.ErrValidation)
	}
	chatID := s.current.ID
	pending := model.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      model.RoleUser,
		Content:   query,
		CreatedAt: time.Now().UTC(),
		Pending:   true,
	}
	s.messages = append(s.messages, pending)
	s.mu.Unlock()

	reply, err := s.gw.SendMessage(ctx, chatID, gateway.AskRequest{
		Query:       query,
		DocumentIDs: documentIDs,
		TopK:        s.topK,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// The optimistic entry stays, still marked pending.
		s.lastErr = err.Error()
		return nil, err
	}
	if s.current == nil || s.current.ID != chatID {
		// The user switched chats while the question was in flight; the
		// reply belongs to a transcript we no longer display.
		return reply, nil
	}
	for i := range s.messages {
		if s.messages[i].ID == pending.ID {
			s.messages[i].Pending = false
		}
	}
	s.messages = append(s.messages, *reply)
	s.lastErr = ""
	return reply, nil
}

// RefreshMessages reloads the current transcript from the server. The
// result is discarded when the selection changed while the call was in
// flight.
func (s *ChatStore) RefreshMessages(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return app_errors.ErrNoActiveChat
	}
	chatID := s.current.ID
	seq := s.openSeq
	s.mu.Unlock()

	messages, err := s.gw.ListMessages(ctx, chatID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.openSeq || s.current == nil || s.current.ID != chatID {
		return nil
	}
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.messages = messages
	s.lastErr = ""
	return nil
}

// Reset drops every conversation from memory. Called on sign-out; the
// sequence bumps make sure in-flight responses land nowhere.
func (s *ChatStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = nil
	s.current = nil
	s.messages = nil
	s.lastErr = ""
	s.listSeq++
	s.openSeq++
}

// Chats returns a copy of the conversation list.
func (s *ChatStore) Chats() []model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Chat(nil), s.chats...)
}

// CurrentChat returns a copy of the selected conversation, or nil.
func (s *ChatStore) CurrentChat() *model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	chat := *s.current
	return &chat
}

// Messages returns a copy of the current transcript.
func (s *ChatStore) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.messages...)
}

// Err returns the last recorded error message for UI display.
func (s *ChatStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
