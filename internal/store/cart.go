package store

import (
	"context"
	"errors"
	"math"
	"sync"

	"monoshop/internal/domain"
	"monoshop/internal/observability"
	"monoshop/internal/storage"
)

// CartStore holds the cart lines, keyed by product ID with insertion order
// preserved for display. Every mutation writes the local snapshot
// synchronously; the server mirror is updated best-effort when a session
// exists.
type CartStore struct {
	mu       sync.RWMutex
	backend  domain.CartBackend
	kv       *storage.KV
	sessions SessionSource
	syncer   *syncer
	lines    []domain.CartLine
}

// NewCartStore creates a CartStore. Call Load to restore the persisted
// snapshot.
func NewCartStore(backend domain.CartBackend, kv *storage.KV, sessions SessionSource) *CartStore {
	return &CartStore{
		backend:  backend,
		kv:       kv,
		sessions: sessions,
		syncer:   newSyncer(),
	}
}

// Load restores the cart from local storage. A missing or unreadable
// snapshot starts an empty cart.
func (s *CartStore) Load(ctx context.Context) {
	var lines []domain.CartLine
	err := s.kv.GetJSON(ctx, storage.KeyCartItems, &lines)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		observability.Warn("failed to restore cart snapshot", "error", err.Error())
		return
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}

// AddItem inserts a line for the product, or bumps the existing line's
// quantity by quantity
func (s *CartStore) AddItem(ctx context.Context, product domain.Product, quantity int) {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			s.lines[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, domain.CartLine{
			ProductID:   product.ID,
			Name:        product.Name,
			Price:       product.Price,
			Image:       product.Image,
			Description: product.Description,
			Quantity:    quantity,
		})
	}
	s.mu.Unlock()

	s.persist(ctx)

	if s.sessions.Token() != "" {
		// The backend increments by the posted quantity, so mirror the
		// delta, never the merged local total
		delta := domain.CartLine{
			ProductID:   product.ID,
			Name:        product.Name,
			Price:       product.Price,
			Image:       product.Image,
			Description: product.Description,
			Quantity:    quantity,
		}
		s.syncer.run("cart.add", func(ctx context.Context) error {
			return s.backend.UpsertCartItem(ctx, delta)
		})
	}
}

// RemoveItem deletes the line for productID. Removing an absent product is
// a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	removed := false
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		return
	}
	s.persist(ctx)

	if s.sessions.Token() != "" {
		s.syncer.run("cart.remove", func(ctx context.Context) error {
			return s.backend.RemoveCartItem(ctx, productID)
		})
	}
}

// SetQuantity replaces the stored quantity for productID. The store does
// not validate; callers clamp to a minimum of 1.
func (s *CartStore) SetQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return
	}
	s.persist(ctx)

	if s.sessions.Token() != "" {
		s.syncer.run("cart.set_quantity", func(ctx context.Context) error {
			return s.backend.UpdateCartItem(ctx, productID, quantity)
		})
	}
}

// Clear empties the cart
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	s.persist(ctx)

	if s.sessions.Token() != "" {
		s.syncer.run("cart.clear", func(ctx context.Context) error {
			return s.backend.ClearCart(ctx)
		})
	}
}

// ReplaceFromRemote replaces the cart wholesale with the backend's
// authoritative copy. Pre-login local lines not present remotely are lost;
// there is no merge.
func (s *CartStore) ReplaceFromRemote(ctx context.Context) error {
	lines, err := s.backend.FetchCart(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// Items returns a copy of the cart lines in insertion order
func (s *CartStore) Items() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalPrice sums price times quantity over all lines. Non-finite prices
// and negative quantities contribute nothing; both can only arrive via a
// corrupted snapshot or bad backend data.
func (s *CartStore) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, line := range s.lines {
		price := line.Price
		if math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}
		quantity := line.Quantity
		if quantity < 0 {
			quantity = 0
		}
		total += price * float64(quantity)
	}
	return total
}

// TotalItemCount sums quantities over all lines
func (s *CartStore) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// SessionChanged is the AuthStore observer: session acquisition replaces
// the cart with the server's copy, logout keeps the local mirror as-is
func (s *CartStore) SessionChanged(ctx context.Context, session *domain.Session) {
	if session == nil {
		return
	}
	if err := s.ReplaceFromRemote(ctx); err != nil {
		observability.Warn("failed to fetch cart after login", "error", err.Error())
	}
}

// Wait drains in-flight background syncs
func (s *CartStore) Wait() {
	s.syncer.Wait()
}

// persist writes the current snapshot to local storage. Persistence errors
// are logged, never surfaced: memory remains the source of truth.
func (s *CartStore) persist(ctx context.Context) {
	s.mu.RLock()
	lines := make([]domain.CartLine, len(s.lines))
	copy(lines, s.lines)
	s.mu.RUnlock()

	if err := s.kv.SetJSON(ctx, storage.KeyCartItems, lines); err != nil {
		observability.Warn("failed to persist cart snapshot", "error", err.Error())
	}
}
