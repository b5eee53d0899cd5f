package repository

import (
	"context"

	"docuchat/client/internal/model"
)

// Snapshots is the persistence whitelist for client state that survives a
// restart: the bearer token, the signed-in user's identity record, and the
// UI preference flags. Nothing else is ever written here.
type Snapshots interface {
	SaveToken(ctx context.Context, token string) error
	LoadToken(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error

	SaveUser(ctx context.Context, user *model.User) error
	LoadUser(ctx context.Context) (*model.User, error)
	ClearUser(ctx context.Context) error

	SaveUIState(ctx context.Context, state model.UIState) error
	LoadUIState(ctx context.Context) (model.UIState, error)
}
