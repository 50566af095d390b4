package api

import (
	"context"
	"net/http"
	"net/url"

	"monoshop/internal/domain"
)

// OrderUpdate is the admin edit payload for an order
type OrderUpdate struct {
	Status          string `json:"status,omitempty"`
	PaymentMethod   string `json:"payment_method,omitempty"`
	ShippingAddress string `json:"shipping_address,omitempty"`
	City            string `json:"city,omitempty"`
	Pincode         string `json:"pincode,omitempty"`
}

type orderDetailResponse struct {
	Order *domain.Order     `json:"order"`
	Items []domain.CartLine `json:"items"`
}

// PlaceOrder submits a checkout. Works for both authenticated users (bearer
// token attached automatically) and guests (guest_name/guest_email fields).
func (c *Client) PlaceOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	var placed domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", order, &placed); err != nil {
		return nil, err
	}
	return &placed, nil
}

// ListMyOrders fetches the authenticated user's order history
func (c *Client) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAllOrders fetches every order (admin only). from/to filter by
// creation date when non-empty, formatted YYYY-MM-DD.
func (c *Client) ListAllOrders(ctx context.Context, from, to string) ([]domain.Order, error) {
	path := "/orders/admin/all-orders"
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderDetail fetches one order with its line items (admin only)
func (c *Client) GetOrderDetail(ctx context.Context, id string) (*domain.Order, []domain.CartLine, error) {
	var resp orderDetailResponse
	if err := c.do(ctx, http.MethodGet, "/orders/admin/order-detail/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Order, resp.Items, nil
}

// UpdateOrder edits an order (admin only)
func (c *Client) UpdateOrder(ctx context.Context, id string, update OrderUpdate) (*domain.Order, error) {
	var updated domain.Order
	if err := c.do(ctx, http.MethodPut, "/orders/admin/order/"+url.PathEscape(id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOrder removes an order (admin only)
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/admin/order/"+url.PathEscape(id), nil, nil)
}
