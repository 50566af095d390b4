package store

import (
	"context"
	"errors"
	"testing"

	"monoshop/internal/domain"
	"monoshop/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFor(token string) *domain.Session {
	return &domain.Session{
		Token: token,
		User:  &domain.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: "customer"},
	}
}

func TestAuthStore_SignIn_EstablishesSession(t *testing.T) {
	backend := &mockAuthBackend{
		signInFunc: func(ctx context.Context, email, password string) (*domain.Session, error) {
			require.Equal(t, "asha@example.com", email)
			require.Equal(t, "pw", password)
			return sessionFor("tok-1"), nil
		},
	}
	kv := newTestKV(t)
	s := NewAuthStore(backend, kv)
	ctx := context.Background()

	require.NoError(t, s.SignIn(ctx, "asha@example.com", "pw"))

	assert.Equal(t, "tok-1", s.Token())
	require.NotNil(t, s.Session())
	assert.Equal(t, "u1", s.Session().User.ID)

	persisted, err := kv.Get(ctx, storage.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", persisted)
}

func TestAuthStore_SignIn_WrongCredentials_SurfacesBackendMessage(t *testing.T) {
	backendMsg := errors.New("invalid email or password")
	backend := &mockAuthBackend{
		signInFunc: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return nil, backendMsg
		},
	}
	s := NewAuthStore(backend, newTestKV(t))

	err := s.SignIn(context.Background(), "asha@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
	assert.Nil(t, s.Session())
	assert.Empty(t, s.Token())
}

func TestAuthStore_SignUp_EstablishesSession(t *testing.T) {
	backend := &mockAuthBackend{
		signUpFunc: func(ctx context.Context, email, password, name string) (*domain.Session, error) {
			require.Equal(t, "Asha", name)
			return sessionFor("tok-new"), nil
		},
	}
	s := NewAuthStore(backend, newTestKV(t))

	require.NoError(t, s.SignUp(context.Background(), "asha@example.com", "pw", "Asha"))
	assert.Equal(t, "tok-new", s.Token())
}

func TestAuthStore_Logout_ClearsSessionAndToken(t *testing.T) {
	backend := &mockAuthBackend{
		signInFunc: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return sessionFor("tok-1"), nil
		},
	}
	kv := newTestKV(t)
	s := NewAuthStore(backend, kv)
	ctx := context.Background()

	require.NoError(t, s.SignIn(ctx, "asha@example.com", "pw"))
	s.Logout(ctx)

	assert.Nil(t, s.Session())
	assert.Empty(t, s.Token())

	_, err := kv.Get(ctx, storage.KeyAuthToken)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestAuthStore_Load_VerifiesPersistedToken(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, storage.KeyAuthToken, "tok-persisted"))

	backend := &mockAuthBackend{
		meFunc: func(ctx context.Context, token string) (*domain.User, error) {
			require.Equal(t, "tok-persisted", token)
			return &domain.User{ID: "u1", Name: "Asha"}, nil
		},
	}
	s := NewAuthStore(backend, kv)

	s.Load(ctx)

	require.NotNil(t, s.Session())
	assert.Equal(t, "tok-persisted", s.Token())
	assert.False(t, s.Loading(), "loading flag must reset after verification")
}

func TestAuthStore_Load_RejectedTokenClearedSilently(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, storage.KeyAuthToken, "tok-expired"))

	s := NewAuthStore(&mockAuthBackend{}, kv) // default Me returns ErrUnauthorized

	s.Load(ctx)

	assert.Nil(t, s.Session())
	_, err := kv.Get(ctx, storage.KeyAuthToken)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound, "rejected token must be cleared")
}

func TestAuthStore_Load_TransportFailureKeepsToken(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, storage.KeyAuthToken, "tok-1"))

	backend := &mockAuthBackend{
		meFunc: func(ctx context.Context, token string) (*domain.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	s := NewAuthStore(backend, kv)

	s.Load(ctx)

	assert.Nil(t, s.Session())
	persisted, err := kv.Get(ctx, storage.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", persisted, "token survives for the next startup")
}

func TestAuthStore_Load_NoPersistedToken(t *testing.T) {
	s := NewAuthStore(&mockAuthBackend{}, newTestKV(t))
	s.Load(context.Background())
	assert.Nil(t, s.Session())
	assert.False(t, s.Loading())
}

func TestAuthStore_Observers_FiredOnSignInAndLogout(t *testing.T) {
	backend := &mockAuthBackend{
		signInFunc: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return sessionFor("tok-1"), nil
		},
	}
	s := NewAuthStore(backend, newTestKV(t))

	var events []*domain.Session
	s.OnSessionChange(func(ctx context.Context, session *domain.Session) {
		events = append(events, session)
	})

	ctx := context.Background()
	require.NoError(t, s.SignIn(ctx, "asha@example.com", "pw"))
	s.Logout(ctx)

	require.Len(t, events, 2)
	assert.NotNil(t, events[0])
	assert.Nil(t, events[1])
}

func TestAuthStore_LoginTriggersWholesaleReplace(t *testing.T) {
	// Wire cart and wishlist stores as observers the way the application does
	authBackend := &mockAuthBackend{
		signInFunc: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return sessionFor("tok-1"), nil
		},
	}
	kv := newTestKV(t)
	auth := NewAuthStore(authBackend, kv)

	cartBackend := &mockCartBackend{
		fetchFunc: func(ctx context.Context) ([]domain.CartLine, error) {
			return []domain.CartLine{}, nil
		},
	}
	cart := NewCartStore(cartBackend, kv, auth)
	auth.OnSessionChange(cart.SessionChanged)

	ctx := context.Background()
	cart.AddItem(ctx, testProduct("A", 100), 1)
	require.Equal(t, 1, cart.TotalItemCount())

	// Server cart is empty: local A must be discarded on login
	require.NoError(t, auth.SignIn(ctx, "asha@example.com", "pw"))
	assert.Zero(t, cart.TotalItemCount())
}

func TestAuthStore_LogoutKeepsLocalMirror(t *testing.T) {
	authBackend := &mockAuthBackend{
		signInFunc: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return sessionFor("tok-1"), nil
		},
	}
	kv := newTestKV(t)
	auth := NewAuthStore(authBackend, kv)

	cartBackend := &mockCartBackend{
		fetchFunc: func(ctx context.Context) ([]domain.CartLine, error) {
			return []domain.CartLine{{ProductID: "Z", Name: "Server item", Price: 20, Quantity: 2}}, nil
		},
	}
	cart := NewCartStore(cartBackend, kv, auth)
	auth.OnSessionChange(cart.SessionChanged)

	ctx := context.Background()
	require.NoError(t, auth.SignIn(ctx, "asha@example.com", "pw"))
	require.Equal(t, 2, cart.TotalItemCount())

	auth.Logout(ctx)
	cart.Wait()

	assert.Equal(t, 2, cart.TotalItemCount(), "logout is a pure no-op on cart data")
}
