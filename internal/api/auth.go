package api

import (
	"context"
	"net/http"

	"monoshop/internal/domain"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type meResponse struct {
	User *domain.User `json:"user"`
}

// SignIn exchanges credentials for a session. A backend rejection is
// returned as *Error carrying the backend's message verbatim.
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp sessionResponse
	err := c.do(ctx, http.MethodPost, "/auth/signin", credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: resp.Token, User: resp.User}, nil
}

// SignUp registers a new account and returns its first session
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*domain.Session, error) {
	var resp sessionResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", credentialsRequest{Email: email, Password: password, Name: name}, &resp)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: resp.Token, User: resp.User}, nil
}

// Me verifies a bearer token and returns the profile it belongs to. The
// token is passed explicitly because verification runs before any session
// is established.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var resp meResponse
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

var _ domain.AuthBackend = (*Client)(nil)
