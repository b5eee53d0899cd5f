package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"docuchat/client/internal/model"
)

// Snapshot keys. One row per persisted slice of state.
const (
	keyToken   = "token"
	keyUser    = "user"
	keyUIState = "ui_state"
)

type sqliteSnapshots struct {
	db *sql.DB
}

func NewSQLiteSnapshots(db *sql.DB) Snapshots {
	return &sqliteSnapshots{db: db}
}

func (r *sqliteSnapshots) set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

func (r *sqliteSnapshots) get(ctx context.Context, key string) (string, error) {
	query := "SELECT value FROM snapshots WHERE key = ?"
	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *sqliteSnapshots) clear(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM snapshots WHERE key = ?", key)
	return err
}

func (r *sqliteSnapshots) SaveToken(ctx context.Context, token string) error {
	return r.set(ctx, keyToken, token)
}

func (r *sqliteSnapshots) LoadToken(ctx context.Context) (string, error) {
	return r.get(ctx, keyToken)
}

func (r *sqliteSnapshots) ClearToken(ctx context.Context) error {
	return r.clear(ctx, keyToken)
}

func (r *sqliteSnapshots) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("could not marshal user snapshot: %w", err)
	}
	return r.set(ctx, keyUser, string(data))
}

func (r *sqliteSnapshots) LoadUser(ctx context.Context) (*model.User, error) {
	value, err := r.get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		return nil, fmt.Errorf("could not unmarshal user snapshot: %w", err)
	}
	return &user, nil
}

func (r *sqliteSnapshots) ClearUser(ctx context.Context) error {
	return r.clear(ctx, keyUser)
}

func (r *sqliteSnapshots) SaveUIState(ctx context.Context, state model.UIState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal ui state snapshot: %w", err)
	}
	return r.set(ctx, keyUIState, string(data))
}

func (r *sqliteSnapshots) LoadUIState(ctx context.Context) (model.UIState, error) {
	var state model.UIState
	value, err := r.get(ctx, keyUIState)
	if err != nil {
		return state, err
	}
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		return state, fmt.Errorf("could not unmarshal ui state snapshot: %w", err)
	}
	return state, nil
}
