package repository

import (
	"context"
	"errors"

	"stride-store/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ProductFilterParams represents optional filter parameters for products
type ProductFilterParams struct {
	Category *string
	Gender   *string
	IsNew    *bool
	IsSale   *bool
	Search   *string
}

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Filter(ctx context.Context, params ProductFilterParams) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error

	ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error)
	InsertPending(ctx context.Context, p *models.Product) error
	ListPending(ctx context.Context) ([]models.Product, error)
	Publish(ctx context.Context, id string) (*models.Product, error)
}

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.OrderResponse, error)
	GetByPaymentSession(ctx context.Context, sessionID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	MarkPaid(ctx context.Context, orderNumber string) error
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetAdminPassword(ctx context.Context, id, passwordHash string) error
}

// WishlistRepositoryInterface defines the contract for wishlist repository operations
type WishlistRepositoryInterface interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error)
}
