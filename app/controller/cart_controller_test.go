package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stride-store/cart"
	"stride-store/models"
	"stride-store/repository"
)

type fakeProducts struct {
	repository.ProductRepositoryInterface
	byID map[string]*models.Product
}

func (f *fakeProducts) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func newCartTestRouter() *mux.Router {
	log := logrus.New()
	log.SetOutput(io.Discard)

	products := &fakeProducts{byID: map[string]*models.Product{
		"p1": {
			ID:         "p1",
			Name:       "Air Max Revolution",
			Brand:      "SportTech",
			PriceCents: 29999,
			Status:     models.ProductStatusPublished,
		},
		"p2": {
			ID:     "p2",
			Name:   "Draft Runner",
			Brand:  "SportTech",
			Status: models.ProductStatusPending,
		},
	}}

	c := NewCartController(products, cart.NewMemoryStore(), log)

	r := mux.NewRouter()
	r.HandleFunc("/cart", c.Get).Methods(http.MethodGet)
	r.HandleFunc("/cart", c.Clear).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", c.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", c.UpdateItem).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id}", c.RemoveItem).Methods(http.MethodDelete)
	return r
}

func doCart(t *testing.T, r *mux.Router, method, path, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, models.CartResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp models.CartResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestCartAddItemSetsSessionCookie(t *testing.T) {
	r := newCartTestRouter()

	rec, resp := doCart(t, r, http.MethodPost, "/cart/items", `{"productId":"p1","color":"preto","size":"42"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cart_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1:preto:42", resp.Items[0].ID)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.Equal(t, int64(29999), resp.TotalCents)
	assert.Equal(t, "R$ 299,99", resp.TotalFormatted)
}

func TestCartPersistsAcrossRequestsViaCookie(t *testing.T) {
	r := newCartTestRouter()

	rec, _ := doCart(t, r, http.MethodPost, "/cart/items", `{"productId":"p1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()

	// Same product again on the same session bumps the quantity.
	rec, resp := doCart(t, r, http.MethodPost, "/cart/items", `{"productId":"p1"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, int64(59998), resp.TotalCents)

	// A different session starts from an empty cart.
	_, other := doCart(t, r, http.MethodGet, "/cart", "", nil)
	assert.Empty(t, other.Items)
}

func TestCartVariantsGetSeparateLines(t *testing.T) {
	r := newCartTestRouter()

	rec, _ := doCart(t, r, http.MethodPost, "/cart/items", `{"productId":"p1","size":"42"}`, nil)
	cookies := rec.Result().Cookies()

	_, resp := doCart(t, r, http.MethodPost, "/cart/items", `{"productId":"p1","size":"43"}`, cookies)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "p1:42", resp.Items[0].ID)
	assert.Equal(t, "p1:43", resp.Items[1].ID)
	assert.Equal(t, 2, resp.ItemCount)
}

func TestCartUpdateAndRemove(t *testing.T) {
	r := newCartTestRouter()

	rec, _ := doCart(t, r, http.MethodPost, "/cart/items", `{"productId":"p1"}`, nil)
	cookies := rec.Result().Cookies()

	_, resp := doCart(t, r, http.MethodPut, "/cart/items/p1", `{"quantity":5}`, cookies)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, int64(5*29999), resp.TotalCents)

	// Quantity zero removes the line.
	_, resp = doCart(t, r, http.MethodPut, "/cart/items/p1", `{"quantity":0}`, cookies)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(0), resp.TotalCents)
}

func TestCartClear(t *testing.T) {
	r := newCartTestRouter()

	rec, _ := doCart(t, r, http.MethodPost, "/cart/items", `{"productId":"p1"}`, nil)
	cookies := rec.Result().Cookies()

	_, resp := doCart(t, r, http.MethodDelete, "/cart", "", cookies)
	assert.Empty(t, resp.Items)

	// Clearing an already empty cart is fine.
	rec, _ = doCart(t, r, http.MethodDelete, "/cart", "", cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartRejectsUnknownAndUnpublishedProducts(t *testing.T) {
	r := newCartTestRouter()

	rec, _ := doCart(t, r, http.MethodPost, "/cart/items", `{"productId":"ghost"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doCart(t, r, http.MethodPost, "/cart/items", `{"productId":"p2"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
