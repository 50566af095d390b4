package api

import (
	"context"
	"net/http"
	"net/url"

	"monoshop/internal/domain"
)

type userDetailResponse struct {
	User   *domain.User   `json:"user"`
	Orders []domain.Order `json:"orders"`
}

// ListAllUsers fetches every registered user (admin only)
func (c *Client) ListAllUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users/admin/all-users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserDetail fetches one user with their order history (admin only)
func (c *Client) GetUserDetail(ctx context.Context, id string) (*domain.User, []domain.Order, error) {
	var resp userDetailResponse
	if err := c.do(ctx, http.MethodGet, "/users/admin/user-detail/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, nil, err
	}
	return resp.User, resp.Orders, nil
}
