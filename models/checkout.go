package models

// Payment methods accepted at checkout
const (
	PaymentMethodCard   = "card"
	PaymentMethodBoleto = "boleto"
)

// CheckoutRequest represents the request body for starting a checkout
// Example: {"paymentMethod": "card"}
type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// CheckoutResponse carries the payment redirect obtained from the hosted
// payment processor
// Example response:
// {
//   "url": "https://pay.example.com/session/cs_123",
//   "sessionId": "cs_123",
//   "orderNumber": "ORD-20260115-4F2A91C3"
// }
type CheckoutResponse struct {
	URL         string `json:"url"`
	SessionID   string `json:"sessionId"`
	OrderNumber string `json:"orderNumber"`
}

// VerifyPaymentRequest represents the request body for verifying a payment
// Example: {"sessionId": "cs_123"}
type VerifyPaymentRequest struct {
	SessionID string `json:"sessionId"`
}

// VerifyPaymentResponse reports the payment status for a checkout session.
// OrderNumber and TotalCents are only set once the session is paid.
type VerifyPaymentResponse struct {
	Status      string `json:"status"`
	OrderNumber string `json:"orderNumber,omitempty"`
	TotalCents  int64  `json:"totalCents,omitempty"`
}
