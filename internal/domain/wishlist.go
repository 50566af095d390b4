package domain

import (
	"context"
	"time"
)

// WishlistEntry is one favorited product. Entries are a set keyed by
// ProductID.
type WishlistEntry struct {
	ProductID   string    `json:"product_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	AddedAt     time.Time `json:"added_at"`
}

// WishlistBackend is the authenticated remote wishlist mirror. The backend
// exposes no bulk clear, so clearing degrades to per-item deletes.
type WishlistBackend interface {
	FetchWishlist(ctx context.Context) ([]WishlistEntry, error)
	AddWishlistItem(ctx context.Context, productID string) error
	RemoveWishlistItem(ctx context.Context, productID string) error
}
