package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"stride-store/app/middleware"
	"stride-store/cart"
	"stride-store/models"
	"stride-store/repository"
	"stride-store/utils"
)

const (
	cartSessionCookie = "cart_session"
	cartCookieMaxAge  = 60 * 60 * 24 * 30
)

// CartController handles HTTP requests for the shopping cart. Each request
// binds a cart store to its owner: the authenticated user when there is one,
// otherwise an anonymous session identified by a cookie.
type CartController struct {
	products    repository.ProductRepositoryInterface
	persistence cart.Persistence
	log         logrus.FieldLogger
}

// NewCartController creates a new CartController
func NewCartController(products repository.ProductRepositoryInterface, persistence cart.Persistence, log logrus.FieldLogger) *CartController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CartController{products: products, persistence: persistence, log: log}
}

// ownerID resolves the cart owner for this request. Anonymous visitors get a
// session cookie on first contact so their cart survives across requests.
func (c *CartController) ownerID(w http.ResponseWriter, r *http.Request) string {
	if claims, ok := middleware.ClaimsFrom(r); ok {
		return claims.UserID
	}

	cookie, err := r.Cookie(cartSessionCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     cartSessionCookie,
		Value:    sessionID,
		MaxAge:   cartCookieMaxAge,
		Path:     "/",
		HttpOnly: true,
	})
	return sessionID
}

func (c *CartController) store(w http.ResponseWriter, r *http.Request) *cart.Store {
	return cart.NewStore(r.Context(), c.ownerID(w, r), c.persistence, c.log)
}

func cartResponse(store *cart.Store) models.CartResponse {
	total := store.TotalCents()
	return models.CartResponse{
		Items:          store.Items(),
		TotalCents:     total,
		TotalFormatted: utils.FormatBRL(total),
		ItemCount:      store.ItemCount(),
	}
}

// Get handles GET /cart
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartResponse(c.store(w, r)))
}

// AddItem handles POST /cart/items
// Adding the same product and variant again bumps its quantity by one.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	product, err := c.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get product: %v", err), http.StatusInternalServerError)
		return
	}
	if product.Status != models.ProductStatusPublished {
		http.Error(w, "product is not available", http.StatusConflict)
		return
	}

	store := c.store(w, r)
	store.AddItem(r.Context(), cart.LineInput{
		ID:         cart.LineID(product.ID, req.Color, req.Size),
		Name:       product.Name,
		Brand:      product.Brand,
		PriceCents: product.PriceCents,
		Image:      product.Image,
		Color:      req.Color,
		Size:       req.Size,
	})

	writeJSON(w, http.StatusOK, cartResponse(store))
}

// UpdateItem handles PUT /cart/items/{id}
// A quantity of 0 or less removes the line.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	store := c.store(w, r)
	store.UpdateQuantity(r.Context(), id, req.Quantity)

	writeJSON(w, http.StatusOK, cartResponse(store))
}

// RemoveItem handles DELETE /cart/items/{id}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	store := c.store(w, r)
	store.RemoveItem(r.Context(), id)

	writeJSON(w, http.StatusOK, cartResponse(store))
}

// Clear handles DELETE /cart
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	store := c.store(w, r)
	store.Clear(r.Context())

	writeJSON(w, http.StatusOK, cartResponse(store))
}
