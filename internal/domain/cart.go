package domain

import "context"

// CartLine is one product in the cart with its quantity. Product fields are
// denormalized onto the line so the cart renders without extra lookups.
type CartLine struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
}

// CartBackend is the authenticated remote cart mirror. All calls are
// best-effort from the store's point of view: failures are logged, never
// rolled back into local state.
type CartBackend interface {
	FetchCart(ctx context.Context) ([]CartLine, error)
	UpsertCartItem(ctx context.Context, line CartLine) error
	UpdateCartItem(ctx context.Context, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error
}
