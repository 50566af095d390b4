package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

// Order statuses as reported by the backend
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment methods accepted at checkout
const (
	PaymentMethodCOD      = "cod"
	PaymentMethodRazorpay = "razorpay"
)

// Order represents a placed order. Authenticated orders carry FullName and
// Email; guest orders carry GuestName and GuestEmail instead.
type Order struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id,omitempty"`
	Items           []CartLine `json:"items"`
	TotalPrice      float64    `json:"total_price"`
	ShippingAddress string     `json:"shipping_address"`
	City            string     `json:"city"`
	Pincode         string     `json:"pincode"`
	PaymentMethod   string     `json:"payment_method"`
	Status          string     `json:"status"`
	FullName        string     `json:"full_name,omitempty"`
	Email           string     `json:"email,omitempty"`
	GuestName       string     `json:"guest_name,omitempty"`
	GuestEmail      string     `json:"guest_email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
}
