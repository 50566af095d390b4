package api

import (
	"context"
	"net/http"
	"net/url"

	"monoshop/internal/domain"
)

type cartItemsResponse struct {
	Items []domain.CartLine `json:"items"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// FetchCart retrieves the authenticated user's server-side cart
func (c *Client) FetchCart(ctx context.Context) ([]domain.CartLine, error) {
	var resp cartItemsResponse
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// UpsertCartItem adds a line to the server-side cart, or bumps its quantity
// if the product is already present
func (c *Client) UpsertCartItem(ctx context.Context, line domain.CartLine) error {
	return c.do(ctx, http.MethodPost, "/cart", line, nil)
}

// UpdateCartItem replaces the stored quantity for a product
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	path := "/cart/" + url.PathEscape(productID)
	return c.do(ctx, http.MethodPut, path, cartQuantityRequest{Quantity: quantity}, nil)
}

// RemoveCartItem deletes a product from the server-side cart
func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(productID), nil, nil)
}

// ClearCart empties the server-side cart
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

var _ domain.CartBackend = (*Client)(nil)
