package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"stride-store/models"
	"stride-store/repository"
	"stride-store/service"
)

// AdminProductController handles HTTP requests for product management:
// manual CRUD, the Drive import flow and the PDF catalog export.
type AdminProductController struct {
	products repository.ProductRepositoryInterface
	importer *service.ImportService
	catalog  *service.CatalogExportService
	log      logrus.FieldLogger
}

// NewAdminProductController creates a new AdminProductController
func NewAdminProductController(products repository.ProductRepositoryInterface, importer *service.ImportService, catalog *service.CatalogExportService, log logrus.FieldLogger) *AdminProductController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AdminProductController{products: products, importer: importer, catalog: catalog, log: log}
}

func validateProductFields(category, gender string, priceCents int64) error {
	switch category {
	case models.CategoryRunning, models.CategoryCasual, models.CategoryBasketball, models.CategoryLifestyle:
	default:
		return fmt.Errorf("invalid category %q", category)
	}
	switch gender {
	case models.GenderMasculino, models.GenderFeminino, models.GenderInfantil:
	default:
		return fmt.Errorf("invalid gender %q", gender)
	}
	if priceCents <= 0 {
		return fmt.Errorf("priceCents must be positive")
	}
	return nil
}

// Create handles POST /admin/products
func (c *AdminProductController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Brand == "" {
		http.Error(w, "name and brand are required", http.StatusBadRequest)
		return
	}
	if err := validateProductFields(req.Category, req.Gender, req.PriceCents); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product := &models.Product{
		Name:               req.Name,
		Brand:              req.Brand,
		PriceCents:         req.PriceCents,
		OriginalPriceCents: req.OriginalPriceCents,
		Image:              req.Image,
		IsNew:              req.IsNew,
		IsSale:             req.IsSale,
		Category:           req.Category,
		Gender:             req.Gender,
		Description:        req.Description,
		Sizes:              req.Sizes,
		Status:             models.ProductStatusPublished,
	}
	if err := c.products.Create(r.Context(), product); err != nil {
		http.Error(w, fmt.Sprintf("Failed to create product: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /admin/products/{id}
func (c *AdminProductController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := validateProductFields(req.Category, req.Gender, req.PriceCents); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := c.products.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to update product: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /admin/products/{id}
func (c *AdminProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := c.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to delete product: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /admin/products/import
// Scans a Drive folder and creates pending products from its images.
func (c *AdminProductController) Import(w http.ResponseWriter, r *http.Request) {
	var req models.ImportProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.FolderID == "" {
		http.Error(w, "folderId is required", http.StatusBadRequest)
		return
	}

	stats, err := c.importer.ImportFromFolder(r.Context(), req.FolderID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to import products: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// ListPending handles GET /admin/products/pending
func (c *AdminProductController) ListPending(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.ListPending(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list pending products: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.ProductListResponse{Products: products})
}

// Publish handles POST /admin/products/{id}/publish
// Only pending products with a price can be published.
func (c *AdminProductController) Publish(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := c.products.Publish(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "product is not pending or has no price", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to publish product: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ExportCatalog handles GET /admin/catalog/export
// Streams a PDF catalog of the published products.
func (c *AdminProductController) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	pdf, err := c.catalog.ExportPDF(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to export catalog: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("catalogo-%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
