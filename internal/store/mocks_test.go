package store

import (
	"context"
	"sync"
	"testing"

	"monoshop/internal/domain"
	"monoshop/internal/storage"

	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) *storage.KV {
	t.Helper()
	kv, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

// staticSession is a fixed-token SessionSource
type staticSession string

func (s staticSession) Token() string { return string(s) }

// mockCartBackend records mirror calls; override func fields to customize
type mockCartBackend struct {
	mu sync.Mutex

	fetchFunc func(ctx context.Context) ([]domain.CartLine, error)

	upserted []domain.CartLine
	updated  map[string]int
	removed  []string
	cleared  int
}

func (m *mockCartBackend) FetchCart(ctx context.Context) ([]domain.CartLine, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return nil, nil
}

func (m *mockCartBackend) UpsertCartItem(ctx context.Context, line domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserted = append(m.upserted, line)
	return nil
}

func (m *mockCartBackend) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updated == nil {
		m.updated = make(map[string]int)
	}
	m.updated[productID] = quantity
	return nil
}

func (m *mockCartBackend) RemoveCartItem(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, productID)
	return nil
}

func (m *mockCartBackend) ClearCart(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared++
	return nil
}

func (m *mockCartBackend) upsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.upserted)
}

// mockWishlistBackend records mirror calls
type mockWishlistBackend struct {
	mu sync.Mutex

	fetchFunc  func(ctx context.Context) ([]domain.WishlistEntry, error)
	removeFunc func(ctx context.Context, productID string) error

	added   []string
	removed []string
}

func (m *mockWishlistBackend) FetchWishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return nil, nil
}

func (m *mockWishlistBackend) AddWishlistItem(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, productID)
	return nil
}

func (m *mockWishlistBackend) RemoveWishlistItem(ctx context.Context, productID string) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, productID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, productID)
	return nil
}

func (m *mockWishlistBackend) removedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.removed))
	copy(out, m.removed)
	return out
}

// mockAuthBackend serves canned sessions
type mockAuthBackend struct {
	signInFunc func(ctx context.Context, email, password string) (*domain.Session, error)
	signUpFunc func(ctx context.Context, email, password, name string) (*domain.Session, error)
	meFunc     func(ctx context.Context, token string) (*domain.User, error)
}

func (m *mockAuthBackend) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *mockAuthBackend) SignUp(ctx context.Context, email, password, name string) (*domain.Session, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, email, password, name)
	}
	return nil, domain.ErrInvalidInput
}

func (m *mockAuthBackend) Me(ctx context.Context, token string) (*domain.User, error) {
	if m.meFunc != nil {
		return m.meFunc(ctx, token)
	}
	return nil, domain.ErrUnauthorized
}

func testProduct(id string, price float64) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        "Product " + id,
		Price:       price,
		Image:       "/images/" + id + ".jpg",
		Description: "test product",
	}
}
