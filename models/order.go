package models

// Order statuses
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// Order represents an order record in the database, created at checkout
// handoff and keyed by a generated order number.
type Order struct {
	ID               int64  `json:"id"`
	OrderNumber      string `json:"orderNumber"`
	UserID           string `json:"userId"`
	Status           string `json:"status"` // pending, paid
	TotalCents       int64  `json:"totalCents"`
	PaymentSessionID string `json:"paymentSessionId,omitempty"`
	PaymentMethod    string `json:"paymentMethod,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

// OrderLine is a frozen snapshot of one cart line at checkout time.
type OrderLine struct {
	ID         int64  `json:"id"`
	OrderID    int64  `json:"orderId"`
	LineItemID string `json:"lineItemId"` // product id plus variant attributes
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	PriceCents int64  `json:"priceCents"`
	Image      string `json:"image,omitempty"`
	Color      string `json:"color,omitempty"`
	Size       string `json:"size,omitempty"`
	Qty        int    `json:"qty"`
}

// OrderResponse represents the response for a single order with its lines
// Example response:
// {
//   "id": 1,
//   "orderNumber": "ORD-20260115-4F2A91C3",
//   "status": "paid",
//   "totalCents": 59998,
//   "createdAt": "2026-01-15T10:30:00Z",
//   "lines": [
//     {"lineItemId": "7f4df0b0:preto:42", "name": "Air Max Revolution", "priceCents": 29999, "qty": 2}
//   ]
// }
type OrderResponse struct {
	Order
	Lines []OrderLine `json:"lines"`
}

// OrderListResponse represents the response for listing a user's orders
type OrderListResponse struct {
	Orders []Order `json:"orders"`
}
