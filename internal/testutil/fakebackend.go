// Package testutil provides an in-memory fake of the storefront backend
// for tests: the REST contract served over httptest with seedable state.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"monoshop/internal/domain"

	"github.com/go-chi/chi/v5"
)

// FakeBackend is an in-memory stand-in for the remote REST backend. All
// state is guarded by one mutex; handlers are small and hold it for their
// whole body.
type FakeBackend struct {
	mu sync.Mutex

	products   []domain.Product
	categories []domain.Category
	users      []domain.User
	passwords  map[string]string // email -> password
	tokens     map[string]string // token -> user ID
	carts      map[string][]domain.CartLine      // user ID -> lines
	wishlists  map[string][]domain.WishlistEntry // user ID -> entries
	orders     []domain.Order

	nextID int
}

// NewFakeBackend creates an empty backend
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		passwords: make(map[string]string),
		tokens:    make(map[string]string),
		carts:     make(map[string][]domain.CartLine),
		wishlists: make(map[string][]domain.WishlistEntry),
	}
}

// StartServer runs the fake backend on an httptest server torn down with
// the test
func StartServer(t *testing.T) (*FakeBackend, *httptest.Server) {
	t.Helper()
	f := NewFakeBackend()
	srv := httptest.NewServer(f.Router())
	t.Cleanup(srv.Close)
	return f, srv
}

// SeedUser registers a user with known credentials and returns a live
// token for it
func (f *FakeBackend) SeedUser(name, email, password, role string) (domain.User, string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user := domain.User{
		ID:        f.idLocked("user"),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	f.users = append(f.users, user)
	f.passwords[email] = password

	token := f.idLocked("tok")
	f.tokens[token] = user.ID
	return user, token
}

// SeedProduct adds a catalog product
func (f *FakeBackend) SeedProduct(p domain.Product) domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = f.idLocked("prod")
	}
	f.products = append(f.products, p)
	return p
}

// SeedCategory adds a category
func (f *FakeBackend) SeedCategory(c domain.Category) domain.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = f.idLocked("cat")
	}
	f.categories = append(f.categories, c)
	return c
}

// SeedCart sets a user's server-side cart
func (f *FakeBackend) SeedCart(userID string, lines []domain.CartLine) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[userID] = lines
}

// SeedWishlist sets a user's server-side wishlist
func (f *FakeBackend) SeedWishlist(userID string, entries []domain.WishlistEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wishlists[userID] = entries
}

// Cart returns a copy of a user's server-side cart
func (f *FakeBackend) Cart(userID string) []domain.CartLine {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.CartLine, len(f.carts[userID]))
	copy(out, f.carts[userID])
	return out
}

// Wishlist returns a copy of a user's server-side wishlist
func (f *FakeBackend) Wishlist(userID string) []domain.WishlistEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.WishlistEntry, len(f.wishlists[userID]))
	copy(out, f.wishlists[userID])
	return out
}

// Orders returns a copy of all placed orders
func (f *FakeBackend) Orders() []domain.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Order, len(f.orders))
	copy(out, f.orders)
	return out
}

// Router builds the REST surface
func (f *FakeBackend) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/signup", f.handleSignUp)
	r.Post("/auth/signin", f.handleSignIn)
	r.Get("/auth/me", f.handleMe)

	r.Get("/products", f.handleListProducts)
	r.Post("/products", f.handleCreateProduct)
	r.Get("/products/{id}", f.handleGetProduct)
	r.Put("/products/{id}", f.handleUpdateProduct)
	r.Delete("/products/{id}", f.handleDeleteProduct)

	r.Get("/products/{id}/images", f.handleListImages)
	r.Post("/products/{id}/images", f.handleAddImage)
	r.Put("/products/{id}/images/{imageID}", f.handleUpdateImage)
	r.Put("/products/{id}/images/{imageID}/replace", f.handleReplaceImage)
	r.Delete("/products/{id}/images/{imageID}", f.handleDeleteImage)

	r.Get("/categories", f.handleListCategories)
	r.Post("/categories", f.requireAuth(f.handleCreateCategory))
	r.Get("/categories/{id}", f.handleGetCategory)
	r.Get("/categories/slug/{slug}", f.handleGetCategoryBySlug)
	r.Put("/categories/{id}", f.requireAuth(f.handleUpdateCategory))
	r.Delete("/categories/{id}", f.requireAuth(f.handleDeleteCategory))

	r.Get("/cart", f.requireAuth(f.handleGetCart))
	r.Post("/cart", f.requireAuth(f.handleAddCartItem))
	r.Put("/cart/{productID}", f.requireAuth(f.handleUpdateCartItem))
	r.Delete("/cart", f.requireAuth(f.handleClearCart))
	r.Delete("/cart/{productID}", f.requireAuth(f.handleRemoveCartItem))

	r.Get("/wishlist", f.requireAuth(f.handleGetWishlist))
	r.Post("/wishlist", f.requireAuth(f.handleAddWishlistItem))
	r.Delete("/wishlist/{productID}", f.requireAuth(f.handleRemoveWishlistItem))

	r.Post("/orders", f.handlePlaceOrder)
	r.Get("/orders", f.requireAuth(f.handleMyOrders))
	r.Get("/orders/admin/all-orders", f.requireAdmin(f.handleAllOrders))
	r.Get("/orders/admin/order-detail/{id}", f.requireAdmin(f.handleOrderDetail))
	r.Put("/orders/admin/order/{id}", f.requireAdmin(f.handleUpdateOrder))
	r.Delete("/orders/admin/order/{id}", f.requireAdmin(f.handleDeleteOrder))

	r.Get("/users/admin/all-users", f.requireAdmin(f.handleAllUsers))
	r.Get("/users/admin/user-detail/{id}", f.requireAdmin(f.handleUserDetail))

	r.Post("/payments/razorpay", f.handleCreatePaymentOrder)
	r.Post("/payments/razorpay/verify", f.handleVerifyPayment)

	return r
}

func (f *FakeBackend) idLocked(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func (f *FakeBackend) userForToken(token string) *domain.User {
	userID, ok := f.tokens[token]
	if !ok {
		return nil
	}
	for i := range f.users {
		if f.users[i].ID == userID {
			return &f.users[i]
		}
	}
	return nil
}

func (f *FakeBackend) requireAuth(next func(w http.ResponseWriter, r *http.Request, user *domain.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		user := f.userForToken(bearerToken(r))
		f.mu.Unlock()
		if user == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r, user)
	}
}

func (f *FakeBackend) requireAdmin(next func(w http.ResponseWriter, r *http.Request, user *domain.User)) http.HandlerFunc {
	return f.requireAuth(func(w http.ResponseWriter, r *http.Request, user *domain.User) {
		if !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r, user)
	})
}
