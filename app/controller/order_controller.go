package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"stride-store/app/middleware"
	"stride-store/models"
	"stride-store/repository"
)

// OrderController handles HTTP requests for a user's orders
type OrderController struct {
	orders repository.OrderRepositoryInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(orders repository.OrderRepositoryInterface) *OrderController {
	return &OrderController{orders: orders}
}

// List handles GET /orders
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r)

	orders, err := c.orders.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list orders: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.OrderListResponse{Orders: orders})
}

// Get handles GET /orders/{orderNumber}
// Users only see their own orders; admins see any.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r)
	orderNumber := mux.Vars(r)["orderNumber"]

	order, err := c.orders.GetByOrderNumber(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get order: %v", err), http.StatusInternalServerError)
		return
	}

	if order.UserID != claims.UserID && !claims.IsAdmin {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
