package interfaces

import (
	"context"
	"io"

	"docuchat/client/internal/gateway"
	"docuchat/client/internal/model"
)

// Gateway is the contract the stores depend on instead of the concrete
// HTTP client, which keeps them decoupled from transport details and easy
// to test via mocks. *gateway.Client satisfies it.
type Gateway interface {
	// sessions
	SignUp(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	HasSession(ctx context.Context) bool
	CurrentUser(ctx context.Context) (*model.User, error)
	UpdateCurrentUser(ctx context.Context, req gateway.UpdateUserRequest) (*model.User, error)

	// chats
	ListChats(ctx context.Context) ([]model.Chat, error)
	CreateChat(ctx context.Context, title string) (*model.Chat, error)
	GetChat(ctx context.Context, chatID string) (*model.FullChat, error)
	DeleteChat(ctx context.Context, chatID string) error
	ListMessages(ctx context.Context, chatID string) ([]model.Message, error)
	SendMessage(ctx context.Context, chatID string, req gateway.AskRequest) (*model.Message, error)

	// documents
	ListDocuments(ctx context.Context, category string, limit int) ([]model.Document, error)
	UploadDocument(ctx context.Context, filename string, file io.Reader, meta gateway.DocumentMetadata) (*model.Document, error)
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	UpdateDocument(ctx context.Context, id string, meta gateway.DocumentMetadata) (*model.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	ReindexDocument(ctx context.Context, id string) (*model.Document, error)

	// health
	Health(ctx context.Context) error
}
