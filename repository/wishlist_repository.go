package repository

import (
	"context"
	"fmt"
	"strings"

	"stride-store/db"
	"stride-store/models"
)

// ErrAlreadyInWishlist is returned when favoriting a product twice.
var ErrAlreadyInWishlist = fmt.Errorf("product already in wishlist")

// WishlistRepository handles database operations for user favorites
type WishlistRepository struct{}

// NewWishlistRepository creates a new WishlistRepository
func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{}
}

// Ensure WishlistRepository implements WishlistRepositoryInterface
var _ WishlistRepositoryInterface = (*WishlistRepository)(nil)

// Add favorites a product for the user. Each (user, product) pair exists at
// most once, enforced by a unique index.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID string) error {
	query := `
		INSERT INTO wishlist (user_id, product_id, created_at)
		VALUES ($1, $2, NOW())
	`
	if _, err := db.DB.ExecContext(ctx, query, userID, productID); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrAlreadyInWishlist
		}
		return fmt.Errorf("failed to insert wishlist entry: %w", err)
	}
	return nil
}

// Remove unfavorites a product. Removing an absent entry is a no-op.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2`
	if _, err := db.DB.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("failed to delete wishlist entry: %w", err)
	}
	return nil
}

// ListByUser returns the user's favorites joined with their product records,
// oldest first.
func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	query := `
		SELECT w.id, w.product_id,
			p.id, p.name, p.brand, p.price_cents, COALESCE(p.original_price_cents, 0),
			COALESCE(p.image, ''), COALESCE(p.rating, 0), p.is_new, p.is_sale, p.category, p.gender,
			COALESCE(p.description, ''), COALESCE(p.sizes, ''), p.status, COALESCE(p.drive_file_id, ''), p.created_at
		FROM wishlist w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.id
	`
	rows, err := db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	items := []models.WishlistItem{}
	for rows.Next() {
		var it models.WishlistItem
		var sizes string
		err := rows.Scan(&it.ID, &it.ProductID,
			&it.Product.ID, &it.Product.Name, &it.Product.Brand, &it.Product.PriceCents,
			&it.Product.OriginalPriceCents, &it.Product.Image, &it.Product.Rating,
			&it.Product.IsNew, &it.Product.IsSale, &it.Product.Category, &it.Product.Gender,
			&it.Product.Description, &sizes, &it.Product.Status, &it.Product.DriveFileID,
			&it.Product.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist entry: %w", err)
		}
		if sizes != "" {
			it.Product.Sizes = strings.Split(sizes, ",")
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
