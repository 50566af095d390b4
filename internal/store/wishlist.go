package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"monoshop/internal/domain"
	"monoshop/internal/observability"
	"monoshop/internal/storage"
)

// WishlistStore holds favorited products with set semantics keyed by
// product ID. Persistence discipline matches CartStore: local snapshot
// first, best-effort remote mirror second.
type WishlistStore struct {
	mu       sync.RWMutex
	backend  domain.WishlistBackend
	kv       *storage.KV
	sessions SessionSource
	syncer   *syncer
	entries  []domain.WishlistEntry

	now func() time.Time
}

// NewWishlistStore creates a WishlistStore. Call Load to restore the
// persisted snapshot.
func NewWishlistStore(backend domain.WishlistBackend, kv *storage.KV, sessions SessionSource) *WishlistStore {
	return &WishlistStore{
		backend:  backend,
		kv:       kv,
		sessions: sessions,
		syncer:   newSyncer(),
		now:      time.Now,
	}
}

// Load restores the wishlist from local storage
func (s *WishlistStore) Load(ctx context.Context) {
	var entries []domain.WishlistEntry
	err := s.kv.GetJSON(ctx, storage.KeyWishlist, &entries)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		observability.Warn("failed to restore wishlist snapshot", "error", err.Error())
		return
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// Add favorites a product. Adding a product that is already present is a
// no-op.
func (s *WishlistStore) Add(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	for _, e := range s.entries {
		if e.ProductID == product.ID {
			s.mu.Unlock()
			return
		}
	}
	s.entries = append(s.entries, domain.WishlistEntry{
		ProductID:   product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Image:       product.Image,
		Description: product.Description,
		AddedAt:     s.now().UTC(),
	})
	s.mu.Unlock()

	s.persist(ctx)

	if s.sessions.Token() != "" {
		s.syncer.run("wishlist.add", func(ctx context.Context) error {
			return s.backend.AddWishlistItem(ctx, product.ID)
		})
	}
}

// Remove unfavorites a product. Removing an absent product is a no-op.
func (s *WishlistStore) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	removed := false
	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
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
		s.syncer.run("wishlist.remove", func(ctx context.Context) error {
			return s.backend.RemoveWishlistItem(ctx, productID)
		})
	}
}

// IsMember reports whether productID is favorited
func (s *WishlistStore) IsMember(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// Clear unfavorites everything. The backend has no bulk clear endpoint, so
// the remote mirror degrades to sequential per-item deletes.
func (s *WishlistStore) Clear(ctx context.Context) {
	s.mu.Lock()
	cleared := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		cleared = append(cleared, e.ProductID)
	}
	s.entries = nil
	s.mu.Unlock()

	s.persist(ctx)

	if len(cleared) > 0 && s.sessions.Token() != "" {
		s.syncer.run("wishlist.clear", func(ctx context.Context) error {
			for _, productID := range cleared {
				if err := s.backend.RemoveWishlistItem(ctx, productID); err != nil {
					return err
				}
			}
			return nil
		})
	}
}

// Count returns the number of favorited products
func (s *WishlistStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of the wishlist in insertion order
func (s *WishlistStore) Entries() []domain.WishlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.WishlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ReplaceFromRemote replaces the wishlist wholesale with the backend's
// authoritative copy; no merge
func (s *WishlistStore) ReplaceFromRemote(ctx context.Context) error {
	entries, err := s.backend.FetchWishlist(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// SessionChanged is the AuthStore observer, mirroring CartStore's
// replace-on-login and keep-on-logout behavior
func (s *WishlistStore) SessionChanged(ctx context.Context, session *domain.Session) {
	if session == nil {
		return
	}
	if err := s.ReplaceFromRemote(ctx); err != nil {
		observability.Warn("failed to fetch wishlist after login", "error", err.Error())
	}
}

// Wait drains in-flight background syncs
func (s *WishlistStore) Wait() {
	s.syncer.Wait()
}

func (s *WishlistStore) persist(ctx context.Context) {
	s.mu.RLock()
	entries := make([]domain.WishlistEntry, len(s.entries))
	copy(entries, s.entries)
	s.mu.RUnlock()

	if err := s.kv.SetJSON(ctx, storage.KeyWishlist, entries); err != nil {
		observability.Warn("failed to persist wishlist snapshot", "error", err.Error())
	}
}
