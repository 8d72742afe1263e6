package models

// WishlistItem is one favorited product of a user, joined with the product
// record for display.
type WishlistItem struct {
	ID        int64   `json:"id"`
	ProductID string  `json:"productId"`
	Product   Product `json:"product"`
}

// AddWishlistItemRequest represents the request body for favoriting a product
// Example: {"productId": "7f4df0b0-..."}
type AddWishlistItemRequest struct {
	ProductID string `json:"productId"`
}

// WishlistResponse represents the response for listing a user's favorites
// Example response:
// {
//   "items": [
//     {"id": 1, "productId": "7f4df0b0-...", "product": {"name": "Air Max Revolution", "brand": "SportTech", "priceCents": 29999}}
//   ]
// }
type WishlistResponse struct {
	Items []WishlistItem `json:"items"`
}
