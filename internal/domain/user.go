package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
)

// User represents an account on the remote backend
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	TotalOrders int       `json:"total_orders,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// IsAdmin reports whether the user may call admin endpoints
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// Session is an authenticated session: an opaque bearer token plus the
// profile the backend issued it for
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AuthBackend is the credential surface of the remote backend
type AuthBackend interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, name string) (*Session, error)
	Me(ctx context.Context, token string) (*User, error)
}
