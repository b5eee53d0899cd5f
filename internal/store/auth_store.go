package store

import (
	"context"
	"log/slog"
	"sync"

	"docuchat/client/internal/gateway"
	"docuchat/client/internal/interfaces"
	"docuchat/client/internal/model"
	"docuchat/client/internal/repository"
)

// AuthStatus is the session lifecycle state.
type AuthStatus string

const (
	StatusAnonymous      AuthStatus = "anonymous"
	StatusAuthenticating AuthStatus = "authenticating"
	StatusRestoring      AuthStatus = "restoring"
	StatusAuthenticated  AuthStatus = "authenticated"
)

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type signUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// AuthStore holds the session identity. Token handling lives entirely in
// the gateway; this store only tracks who is signed in.
type AuthStore struct {
	gw        interfaces.Gateway
	snapshots repository.Snapshots

	mu      sync.Mutex
	status  AuthStatus
	user    *model.User
	lastErr string
}

func NewAuthStore(gw interfaces.Gateway, snapshots repository.Snapshots) *AuthStore {
	return &AuthStore{gw: gw, snapshots: snapshots, status: StatusAnonymous}
}

// Login exchanges credentials for a session and fetches the identity
// record. The store claims authentication only after both steps succeed; a
// failed user fetch after a successful exchange still surfaces an error.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	if err := validateInput(loginInput{Email: email, Password: password}); err != nil {
		return err
	}

	s.mu.Lock()
	s.status = StatusAuthenticating
	s.mu.Unlock()

	if err := s.gw.Login(ctx, email, password); err != nil {
		s.fail(err)
		return err
	}
	user, err := s.gw.CurrentUser(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.completeSignIn(ctx, user)
	return nil
}

// SignUp registers a new account and signs it in, following the same
// two-step rule as Login.
func (s *AuthStore) SignUp(ctx context.Context, email, password string) error {
	if err := validateInput(signUpInput{Email: email, Password: password}); err != nil {
		return err
	}

	s.mu.Lock()
	s.status = StatusAuthenticating
	s.mu.Unlock()

	if err := s.gw.SignUp(ctx, email, password); err != nil {
		s.fail(err)
		return err
	}
	user, err := s.gw.CurrentUser(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.completeSignIn(ctx, user)
	return nil
}

// Logout resets the identity to anonymous. The server-side revoke is best
// effort: its failure is logged, never returned.
func (s *AuthStore) Logout(ctx context.Context) {
	if err := s.gw.Logout(ctx); err != nil {
		slog.Warn("Session revoke failed, local session is cleared anyway", "error", err)
	}
	if err := s.snapshots.ClearUser(ctx); err != nil {
		slog.Warn("Failed to clear persisted user snapshot", "error", err)
	}
	s.mu.Lock()
	s.user = nil
	s.status = StatusAnonymous
	s.lastErr = ""
	s.mu.Unlock()
}

// RestoreSession runs on startup. Without a persisted token it
// short-circuits to anonymous with no network call; with a token whose
// fetch fails it resets silently, since an expired session is a recovery
// path rather than a user-facing error.
func (s *AuthStore) RestoreSession(ctx context.Context) {
	if !s.gw.HasSession(ctx) {
		s.mu.Lock()
		s.user = nil
		s.status = StatusAnonymous
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.status = StatusRestoring
	s.mu.Unlock()

	user, err := s.gw.CurrentUser(ctx)
	if err != nil {
		slog.Debug("Session restore failed, starting anonymous", "error", err)
		s.mu.Lock()
		s.user = nil
		s.status = StatusAnonymous
		s.mu.Unlock()
		return
	}
	s.completeSignIn(ctx, user)
}

// UpdateProfile changes the mutable identity fields on the server and in
// the store.
func (s *AuthStore) UpdateProfile(ctx context.Context, req gateway.UpdateUserRequest) (*model.User, error) {
	user, err := s.gw.UpdateCurrentUser(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}
	s.persistUser(ctx, user)
	s.mu.Lock()
	s.user = user
	s.lastErr = ""
	s.mu.Unlock()
	return user, nil
}

// ForceLogout drops the identity without a network call. Wired to the
// gateway's auth-expired hook: by the time it runs the token is gone.
func (s *AuthStore) ForceLogout() {
	ctx := context.Background()
	if err := s.snapshots.ClearUser(ctx); err != nil {
		slog.Warn("Failed to clear persisted user snapshot", "error", err)
	}
	s.mu.Lock()
	s.user = nil
	s.status = StatusAnonymous
	s.mu.Unlock()
}

// CurrentUser returns a copy of the signed-in identity, or nil.
func (s *AuthStore) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusAuthenticated && s.user != nil
}

func (s *AuthStore) Status() AuthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the last recorded error message for UI display.
func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *AuthStore) fail(err error) {
	s.mu.Lock()
	s.user = nil
	s.status = StatusAnonymous
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func (s *AuthStore) completeSignIn(ctx context.Context, user *model.User) {
	s.persistUser(ctx, user)
	s.mu.Lock()
	s.user = user
	s.status = StatusAuthenticated
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *AuthStore) persistUser(ctx context.Context, user *model.User) {
	if err := s.snapshots.SaveUser(ctx, user); err != nil {
		slog.Warn("Failed to persist user snapshot", "error", err)
	}
}
