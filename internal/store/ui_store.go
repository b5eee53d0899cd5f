package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"docuchat/client/internal/model"
	"docuchat/client/internal/repository"
)

// DefaultTheme is used until the user picks one.
const DefaultTheme = "dark"

// UIStore holds purely local view preferences. No network calls, no error
// states, no async work; every mutation is persisted so the flags survive
// a restart.
type UIStore struct {
	snapshots repository.Snapshots

	mu    sync.Mutex
	state model.UIState
}

func NewUIStore(snapshots repository.Snapshots) *UIStore {
	return &UIStore{
		snapshots: snapshots,
		state: model.UIState{
			SidebarOpen: true,
			Theme:       DefaultTheme,
		},
	}
}

// Restore loads the persisted flags, keeping the defaults when nothing was
// ever saved.
func (s *UIStore) Restore(ctx context.Context) {
	state, err := s.snapshots.LoadUIState(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Failed to load UI state snapshot, using defaults", "error", err)
		}
		return
	}
	if state.Theme == "" {
		state.Theme = DefaultTheme
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *UIStore) ToggleSidebar(ctx context.Context) {
	s.mu.Lock()
	s.state.SidebarOpen = !s.state.SidebarOpen
	state := s.state
	s.mu.Unlock()
	s.persist(ctx, state)
}

func (s *UIStore) ToggleDocumentPanel(ctx context.Context) {
	s.mu.Lock()
	s.state.DocumentPanelOpen = !s.state.DocumentPanelOpen
	state := s.state
	s.mu.Unlock()
	s.persist(ctx, state)
}

func (s *UIStore) SetTheme(ctx context.Context, theme string) {
	if theme == "" {
		theme = DefaultTheme
	}
	s.mu.Lock()
	s.state.Theme = theme
	state := s.state
	s.mu.Unlock()
	s.persist(ctx, state)
}

// State returns a copy of the current flags.
func (s *UIStore) State() model.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *UIStore) persist(ctx context.Context, state model.UIState) {
	if err := s.snapshots.SaveUIState(ctx, state); err != nil {
		slog.Warn("Failed to persist UI state snapshot", "error", err)
	}
}
