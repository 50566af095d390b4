package api

import (
	"context"
	"fmt"
	"net/http"

	"monoshop/internal/domain"
)

type paymentOrderRequest struct {
	Amount int64 `json:"amount"`
}

type paymentVerifyResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status,omitempty"`
}

// CreateRazorpayOrder asks the backend to open a gateway order. Amount is
// in paise.
func (c *Client) CreateRazorpayOrder(ctx context.Context, amountPaise int64) (*domain.PaymentOrder, error) {
	if amountPaise <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidInput)
	}

	var order domain.PaymentOrder
	if err := c.do(ctx, http.MethodPost, "/payments/razorpay", paymentOrderRequest{Amount: amountPaise}, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, fmt.Errorf("invalid order data from payment gateway")
	}
	return &order, nil
}

// VerifyRazorpayPayment submits the gateway receipt for signature
// verification and returns the verified payment ID
func (c *Client) VerifyRazorpayPayment(ctx context.Context, verification domain.PaymentVerification) (string, error) {
	var resp paymentVerifyResponse
	if err := c.do(ctx, http.MethodPost, "/payments/razorpay/verify", verification, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPaymentVerificationFailed, err)
	}
	return resp.PaymentID, nil
}
