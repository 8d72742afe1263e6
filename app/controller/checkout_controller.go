package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"stride-store/app/middleware"
	"stride-store/cart"
	"stride-store/models"
	"stride-store/repository"
	"stride-store/service"
)

// CheckoutController handles HTTP requests for the checkout handoff
type CheckoutController struct {
	checkout    service.CheckoutServiceInterface
	users       repository.UserRepositoryInterface
	persistence cart.Persistence
	log         logrus.FieldLogger
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(checkout service.CheckoutServiceInterface, users repository.UserRepositoryInterface, persistence cart.Persistence, log logrus.FieldLogger) *CheckoutController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CheckoutController{checkout: checkout, users: users, persistence: persistence, log: log}
}

// Checkout handles POST /checkout
// Requires authentication: the order and the payment session are tied to the
// account. The cart itself is read from the user's persisted store.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r)

	user, err := c.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	store := cart.NewStore(r.Context(), user.ID, c.persistence, c.log)
	items := store.Items()
	if len(items) == 0 {
		http.Error(w, "cart is empty", http.StatusBadRequest)
		return
	}

	resp, err := c.checkout.Checkout(r.Context(), user, items, store.TotalCents(), req.PaymentMethod)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to start checkout: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Verify handles POST /checkout/verify
// Called by the storefront after the processor redirects back.
func (c *CheckoutController) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	resp, err := c.checkout.VerifyPayment(r.Context(), req.SessionID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to verify payment: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
