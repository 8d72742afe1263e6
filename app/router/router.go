package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"stride-store/app/controller"
	"stride-store/app/middleware"
	"stride-store/service"
)

// Controllers groups the HTTP controllers wired into the route table.
type Controllers struct {
	Auth         *controller.AuthController
	Product      *controller.ProductController
	Cart         *controller.CartController
	Checkout     *controller.CheckoutController
	Order        *controller.OrderController
	Wishlist     *controller.WishlistController
	AdminProduct *controller.AdminProductController
}

func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// New builds the route table. The Auth middleware runs on every request and
// verifies a Bearer token when one is present; RequireAuth and RequireAdmin
// gate the protected subtrees.
func New(controllers *Controllers, auth service.AuthServiceInterface, log *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))
	r.Use(middleware.Auth(auth))

	r.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	// Public catalog
	r.HandleFunc("/products", controllers.Product.List).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", controllers.Product.Get).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}/image", controllers.Product.GetImage).Methods(http.MethodGet)

	// Cart, available to anonymous sessions as well
	r.HandleFunc("/cart", controllers.Cart.Get).Methods(http.MethodGet)
	r.HandleFunc("/cart", controllers.Cart.Clear).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", controllers.Cart.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", controllers.Cart.UpdateItem).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id}", controllers.Cart.RemoveItem).Methods(http.MethodDelete)

	// Checkout
	r.Handle("/checkout", middleware.RequireAuth(http.HandlerFunc(controllers.Checkout.Checkout))).Methods(http.MethodPost)
	r.HandleFunc("/checkout/verify", controllers.Checkout.Verify).Methods(http.MethodPost)

	// Accounts
	r.HandleFunc("/auth/register", controllers.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", controllers.Auth.Login).Methods(http.MethodPost)
	r.Handle("/auth/me", middleware.RequireAuth(http.HandlerFunc(controllers.Auth.Me))).Methods(http.MethodGet)

	// Orders
	orders := r.PathPrefix("/orders").Subrouter()
	orders.Use(middleware.RequireAuth)
	orders.HandleFunc("", controllers.Order.List).Methods(http.MethodGet)
	orders.HandleFunc("/{orderNumber}", controllers.Order.Get).Methods(http.MethodGet)

	// Wishlist
	wishlist := r.PathPrefix("/wishlist").Subrouter()
	wishlist.Use(middleware.RequireAuth)
	wishlist.HandleFunc("", controllers.Wishlist.List).Methods(http.MethodGet)
	wishlist.HandleFunc("", controllers.Wishlist.Add).Methods(http.MethodPost)
	wishlist.HandleFunc("/{productId}", controllers.Wishlist.Remove).Methods(http.MethodDelete)

	// Admin
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/products", controllers.AdminProduct.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products/import", controllers.AdminProduct.Import).Methods(http.MethodPost)
	admin.HandleFunc("/products/pending", controllers.AdminProduct.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}", controllers.AdminProduct.Update).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", controllers.AdminProduct.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/products/{id}/publish", controllers.AdminProduct.Publish).Methods(http.MethodPost)
	admin.HandleFunc("/catalog/export", controllers.AdminProduct.ExportCatalog).Methods(http.MethodGet)

	return r
}
