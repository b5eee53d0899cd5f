package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"docuchat/client/internal/model"
)

// AskRequest is the payload posted to a chat. TopK controls retrieval
// breadth; the stores fill in the default when the caller does not.
type AskRequest struct {
	Query       string   `json:"query"`
	DocumentIDs []string `json:"document_ids,omitempty"`
	TopK        int      `json:"top_k"`
}

type createChatRequest struct {
	Title string `json:"title,omitempty"`
}

// ListChats returns all conversations owned by the current user.
func (c *Client) ListChats(ctx context.Context) ([]model.Chat, error) {
	var chats []model.Chat
	if err := c.doJSON(ctx, http.MethodGet, "/chats", nil, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// CreateChat creates a conversation; the server assigns the id.
func (c *Client) CreateChat(ctx context.Context, title string) (*model.Chat, error) {
	var chat model.Chat
	if err := c.doJSON(ctx, http.MethodPost, "/chats", createChatRequest{Title: title}, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetChat fetches one conversation hydrated with its full transcript.
func (c *Client) GetChat(ctx context.Context, chatID string) (*model.FullChat, error) {
	var full model.FullChat
	path := fmt.Sprintf("/chats/%s", url.PathEscape(chatID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &full); err != nil {
		return nil, err
	}
	return &full, nil
}

// DeleteChat removes a conversation and its messages on the server.
func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	path := fmt.Sprintf("/chats/%s", url.PathEscape(chatID))
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// ListMessages returns the transcript of one conversation.
func (c *Client) ListMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	var messages []model.Message
	path := fmt.Sprintf("/chats/%s/messages", url.PathEscape(chatID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a question to a chat and returns the assistant's
// answer, including any retrieval citations the server attached.
func (c *Client) SendMessage(ctx context.Context, chatID string, req AskRequest) (*model.Message, error) {
	var reply model.Message
	path := fmt.Sprintf("/chats/%s/messages", url.PathEscape(chatID))
	if err := c.doJSON(ctx, http.MethodPost, path, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
