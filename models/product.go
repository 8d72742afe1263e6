package models

// Product categories and genders accepted by the storefront
const (
	CategoryRunning    = "running"
	CategoryCasual     = "casual"
	CategoryBasketball = "basketball"
	CategoryLifestyle  = "lifestyle"

	GenderMasculino = "masculino"
	GenderFeminino  = "feminino"
	GenderInfantil  = "infantil"
)

// Product statuses
const (
	ProductStatusPending   = "pending"
	ProductStatusPublished = "published"
)

// Product represents a product in the database.
// Prices are stored in centavos (BRL cents).
type Product struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Brand              string   `json:"brand"`
	PriceCents         int64    `json:"priceCents"`
	OriginalPriceCents int64    `json:"originalPriceCents,omitempty"`
	Image              string   `json:"image"`
	Rating             float64  `json:"rating"`
	IsNew              bool     `json:"isNew"`
	IsSale             bool     `json:"isSale"`
	Category           string   `json:"category"`
	Gender             string   `json:"gender"`
	Description        string   `json:"description,omitempty"`
	Sizes              []string `json:"sizes,omitempty"`
	Status             string   `json:"status"`
	DriveFileID        string   `json:"driveFileId,omitempty"`
	CreatedAt          string   `json:"createdAt"`
}

// CreateProductRequest represents the request body for creating a product
// Example: {"name": "Air Max Revolution", "brand": "SportTech", "priceCents": 29999, "category": "running", "gender": "masculino", "image": "https://...", "sizes": ["40", "41", "42"]}
type CreateProductRequest struct {
	Name               string   `json:"name"`
	Brand              string   `json:"brand"`
	PriceCents         int64    `json:"priceCents"`
	OriginalPriceCents int64    `json:"originalPriceCents,omitempty"`
	Image              string   `json:"image"`
	IsNew              bool     `json:"isNew"`
	IsSale             bool     `json:"isSale"`
	Category           string   `json:"category"`
	Gender             string   `json:"gender"`
	Description        string   `json:"description,omitempty"`
	Sizes              []string `json:"sizes,omitempty"`
}

// UpdateProductRequest represents the request body for updating a product.
// All fields are applied as given; the product keeps its id and status.
type UpdateProductRequest struct {
	Name               string   `json:"name"`
	Brand              string   `json:"brand"`
	PriceCents         int64    `json:"priceCents"`
	OriginalPriceCents int64    `json:"originalPriceCents,omitempty"`
	Image              string   `json:"image"`
	Rating             float64  `json:"rating"`
	IsNew              bool     `json:"isNew"`
	IsSale             bool     `json:"isSale"`
	Category           string   `json:"category"`
	Gender             string   `json:"gender"`
	Description        string   `json:"description,omitempty"`
	Sizes              []string `json:"sizes,omitempty"`
}

// ProductListResponse represents the response for listing products
// Example response:
// {
//   "products": [
//     {
//       "id": "7f4df0b0-...",
//       "name": "Air Max Revolution",
//       "brand": "SportTech",
//       "priceCents": 29999,
//       "originalPriceCents": 39999,
//       "image": "https://cdn.example.com/sneaker-1.jpg",
//       "rating": 4.8,
//       "isSale": true,
//       "category": "running",
//       "gender": "masculino",
//       "status": "published"
//     }
//   ]
// }
type ProductListResponse struct {
	Products []Product `json:"products"`
}

// ImportProductsRequest represents the request body for importing products
// from a Google Drive folder
// Example: {"folderId": "1AbCdEf..."}
type ImportProductsRequest struct {
	FolderID string `json:"folderId"`
}

// ImportProductsResponse reports import stats:
// inserted = new pending products created, skipped = already imported
// (matched by drive file id), total = image files seen in the folder.
type ImportProductsResponse struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}
