package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"stride-store/app/middleware"
	"stride-store/models"
	"stride-store/repository"
)

// WishlistController handles HTTP requests for a user's favorited products.
// All routes require authentication; anonymous visitors have no wishlist.
type WishlistController struct {
	wishlist repository.WishlistRepositoryInterface
	products repository.ProductRepositoryInterface
}

// NewWishlistController creates a new WishlistController
func NewWishlistController(wishlist repository.WishlistRepositoryInterface, products repository.ProductRepositoryInterface) *WishlistController {
	return &WishlistController{wishlist: wishlist, products: products}
}

// List handles GET /wishlist
func (c *WishlistController) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r)

	items, err := c.wishlist.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list wishlist: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.WishlistResponse{Items: items})
}

// Add handles POST /wishlist
// Favoriting the same product twice is rejected with a conflict.
func (c *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r)

	var req models.AddWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	if _, err := c.products.GetByID(r.Context(), req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get product: %v", err), http.StatusInternalServerError)
		return
	}

	if err := c.wishlist.Add(r.Context(), claims.UserID, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrAlreadyInWishlist) {
			http.Error(w, "product already in wishlist", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to add to wishlist: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Remove handles DELETE /wishlist/{productId}
// Removing a product that is not favorited is a no-op.
func (c *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r)
	productID := mux.Vars(r)["productId"]

	if err := c.wishlist.Remove(r.Context(), claims.UserID, productID); err != nil {
		http.Error(w, fmt.Sprintf("Failed to remove from wishlist: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
