package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"stride-store/models"
	"stride-store/repository"
	"stride-store/service"
)

// ProductController handles HTTP requests for the public product catalog
type ProductController struct {
	products repository.ProductRepositoryInterface
	drive    service.DriveServiceInterface
	log      logrus.FieldLogger
}

// NewProductController creates a new ProductController
func NewProductController(products repository.ProductRepositoryInterface, drive service.DriveServiceInterface, log logrus.FieldLogger) *ProductController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ProductController{products: products, drive: drive, log: log}
}

// List handles GET /products
// Supports query filters: category, gender, isNew, isSale, search
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	params := repository.ProductFilterParams{}
	q := r.URL.Query()

	if v := q.Get("category"); v != "" {
		params.Category = &v
	}
	if v := q.Get("gender"); v != "" {
		params.Gender = &v
	}
	if v := q.Get("isNew"); v != "" {
		isNew := v == "true"
		params.IsNew = &isNew
	}
	if v := q.Get("isSale"); v != "" {
		isSale := v == "true"
		params.IsSale = &isSale
	}
	if v := q.Get("search"); v != "" {
		params.Search = &v
	}

	products, err := c.products.Filter(r.Context(), params)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list products: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.ProductListResponse{Products: products})
}

// Get handles GET /products/{id}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := c.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get product: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetImage handles GET /products/{id}/image?size=thumb|medium
// Serves an optimized JPEG, from the disk cache when available.
func (c *ProductController) GetImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	size := r.URL.Query().Get("size")
	if size != service.ImageSizeThumb {
		size = service.ImageSizeMedium
	}

	cachePath := service.GetCachePath(id, size)
	if service.CacheExists(cachePath) {
		data, err := service.ReadFromCache(cachePath)
		if err == nil {
			serveJPEG(w, data)
			return
		}
		c.log.WithError(err).WithField("path", cachePath).Warn("image cache read failed")
	}

	product, err := c.products.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if product.DriveFileID == "" {
		http.Error(w, "product has no stored image", http.StatusNotFound)
		return
	}

	raw, err := c.drive.DownloadImage(product.DriveFileID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to download image: %v", err), http.StatusBadGateway)
		return
	}

	optimized, err := service.OptimizeImage(raw, size)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to optimize image: %v", err), http.StatusInternalServerError)
		return
	}

	// Cache failures only cost the next request a re-download.
	if err := service.SaveToCache(cachePath, optimized); err != nil {
		c.log.WithError(err).WithField("path", cachePath).Warn("image cache write failed")
	}

	serveJPEG(w, optimized)
}

func serveJPEG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
