package model

import "time"

// Message roles as the backend reports them.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// User is the identity record returned by the backend. It is exchanged
// verbatim; the client never reshapes it.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chat stores metadata about a conversation.
type Chat struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Source is a retrieval citation attached to an assistant message. It
// references a document but does not own it.
type Source struct {
	DocumentID   string  `json:"document_id"`
	DocumentName string  `json:"document_name,omitempty"`
	Snippet      string  `json:"snippet,omitempty"`
	Score        float64 `json:"score,omitempty"`
}

// MessageMetadata carries optional server-side annotations on a message.
type MessageMetadata struct {
	Sources []Source `json:"sources,omitempty"`
}

// Message stores a single message in a chat. The user's own turn is built
// client-side with Pending set until the backend confirms the exchange;
// assistant turns always arrive from the server.
type Message struct {
	ID        string           `json:"id"`
	ChatID    string           `json:"chat_id"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Pending   bool             `json:"-"`
}

// FullChat includes the chat metadata and all its messages.
type FullChat struct {
	Chat
	Messages []Message `json:"messages"`
}

// Document is an uploaded artifact. Processing happens asynchronously on
// the server; the client only observes status transitions on a later fetch.
type Document struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Filename        string    `json:"filename"`
	Category        string    `json:"category,omitempty"`
	Description     string    `json:"description,omitempty"`
	SizeBytes       int64     `json:"size_bytes,omitempty"`
	Processed       bool      `json:"processed"`
	ProcessingError string    `json:"processing_error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UIState holds the local view preferences that survive a restart.
type UIState struct {
	SidebarOpen       bool   `json:"sidebar_open"`
	DocumentPanelOpen bool   `json:"document_panel_open"`
	Theme             string `json:"theme"`
}
