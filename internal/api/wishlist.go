package api

import (
	"context"
	"net/http"
	"net/url"

	"monoshop/internal/domain"
)

type wishlistItemsResponse struct {
	Items []domain.WishlistEntry `json:"items"`
}

type wishlistAddRequest struct {
	ProductID string `json:"product_id"`
}

// FetchWishlist retrieves the authenticated user's server-side wishlist
func (c *Client) FetchWishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	var resp wishlistItemsResponse
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// AddWishlistItem favorites a product on the server. Adding a product that
// is already present is a no-op on the backend.
func (c *Client) AddWishlistItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodPost, "/wishlist", wishlistAddRequest{ProductID: productID}, nil)
}

// RemoveWishlistItem unfavorites a product on the server
func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(productID), nil, nil)
}

var _ domain.WishlistBackend = (*Client)(nil)
