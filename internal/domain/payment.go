package domain

import "errors"

var ErrPaymentVerificationFailed = errors.New("payment verification failed")

// PaymentOrder is a gateway-side order created before the buyer pays.
// Amount is in the currency's smallest unit (paise for INR).
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentVerification carries the gateway's post-payment receipt back to
// the backend for signature verification
type PaymentVerification struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}
