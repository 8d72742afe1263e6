package models

import "stride-store/cart"

// AddCartItemRequest represents the request body for adding a product to the cart
// Example: {"productId": "7f4df0b0-...", "color": "preto", "size": "42"}
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

// UpdateCartItemRequest represents the request body for setting a line quantity.
// A quantity of 0 or less removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse represents the current cart with its derived totals
// Example response:
// {
//   "items": [
//     {"id": "7f4df0b0:preto:42", "name": "Air Max Revolution", "brand": "SportTech", "priceCents": 29999, "quantity": 2}
//   ],
//   "totalCents": 59998,
//   "totalFormatted": "R$ 599,98",
//   "itemCount": 2
// }
type CartResponse struct {
	Items          []cart.LineItem `json:"items"`
	TotalCents     int64           `json:"totalCents"`
	TotalFormatted string          `json:"totalFormatted"`
	ItemCount      int             `json:"itemCount"`
}
