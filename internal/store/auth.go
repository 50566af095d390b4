package store

import (
	"context"
	"errors"
	"sync"

	"monoshop/internal/domain"
	"monoshop/internal/observability"
	"monoshop/internal/storage"
)

// SessionObserver is notified after the session changes: with the new
// session on acquisition, with nil on logout or failed verification
type SessionObserver func(ctx context.Context, session *domain.Session)

// AuthStore owns the current session. The token is persisted locally so a
// restart can re-verify it against the backend instead of forcing a fresh
// sign-in.
type AuthStore struct {
	mu        sync.RWMutex
	backend   domain.AuthBackend
	kv        *storage.KV
	session   *domain.Session
	loading   bool
	observers []SessionObserver
}

// NewAuthStore creates an AuthStore. Call Load before first use.
func NewAuthStore(backend domain.AuthBackend, kv *storage.KV) *AuthStore {
	return &AuthStore{backend: backend, kv: kv}
}

// OnSessionChange registers an observer. Register before Load so dependent
// stores see the restored session.
func (s *AuthStore) OnSessionChange(fn SessionObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Load restores a persisted token and verifies it against the backend. A
// rejected token is cleared silently (treated as expired); a transport
// failure keeps the token for the next startup but establishes no session.
// Load never returns an error to the caller.
func (s *AuthStore) Load(ctx context.Context) {
	token, err := s.kv.Get(ctx, storage.KeyAuthToken)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return
	}
	if err != nil {
		observability.Warn("failed to read persisted token", "error", err.Error())
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.backend.Me(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			observability.Info("persisted token rejected, clearing")
			if delErr := s.kv.Delete(ctx, storage.KeyAuthToken); delErr != nil {
				observability.Warn("failed to clear persisted token", "error", delErr.Error())
			}
		} else {
			observability.Warn("token verification unreachable", "error", err.Error())
		}
		return
	}

	session := &domain.Session{Token: token, User: user}
	s.setSession(session)
	s.notify(ctx, session)
}

// SignIn exchanges credentials for a session. On failure the backend's
// error is returned unchanged for display.
func (s *AuthStore) SignIn(ctx context.Context, email, password string) error {
	session, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	s.establish(ctx, session)
	return nil
}

// SignUp registers an account and establishes its session
func (s *AuthStore) SignUp(ctx context.Context, email, password, name string) error {
	session, err := s.backend.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}
	s.establish(ctx, session)
	return nil
}

// Logout clears the in-memory session and the persisted token. No backend
// call is made; dependent stores keep their local mirrors as-is.
func (s *AuthStore) Logout(ctx context.Context) {
	s.setSession(nil)
	if err := s.kv.Delete(ctx, storage.KeyAuthToken); err != nil {
		observability.Warn("failed to clear persisted token", "error", err.Error())
	}
	s.notify(ctx, nil)
}

// Session returns the current session, or nil
func (s *AuthStore) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token returns the current bearer token, or "". Implements the token
// source consumed by the API client and the sibling stores.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// Loading reports whether the initial verification pass is in flight
func (s *AuthStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *AuthStore) establish(ctx context.Context, session *domain.Session) {
	s.setSession(session)
	if err := s.kv.Set(ctx, storage.KeyAuthToken, session.Token); err != nil {
		observability.Warn("failed to persist token", "error", err.Error())
	}
	s.notify(ctx, session)
}

func (s *AuthStore) setSession(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

func (s *AuthStore) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// notify runs observers outside the lock; observers may call back into the
// store
func (s *AuthStore) notify(ctx context.Context, session *domain.Session) {
	s.mu.RLock()
	observers := make([]SessionObserver, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(ctx, session)
	}
}
