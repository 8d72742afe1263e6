package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stride-store/db"
	"stride-store/models"
)

// ProductRepository handles database operations for products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `id, name, brand, price_cents, COALESCE(original_price_cents, 0),
	COALESCE(image, ''), COALESCE(rating, 0), is_new, is_sale, category, gender,
	COALESCE(description, ''), COALESCE(sizes, ''), status, COALESCE(drive_file_id, ''), created_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	var p models.Product
	var sizes string
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.PriceCents, &p.OriginalPriceCents,
		&p.Image, &p.Rating, &p.IsNew, &p.IsSale, &p.Category, &p.Gender,
		&p.Description, &sizes, &p.Status, &p.DriveFileID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if sizes != "" {
		p.Sizes = strings.Split(sizes, ",")
	}
	return &p, nil
}

// GetByID fetches a single product by id
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	p, err := scanProduct(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return p, nil
}

// Filter lists published products matching the optional filter parameters.
// Search matches name and brand case-insensitively.
func (r *ProductRepository) Filter(ctx context.Context, params ProductFilterParams) ([]models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE status = 'published'`, productColumns)
	args := []any{}
	argPos := 1

	if params.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, *params.Category)
		argPos++
	}
	if params.Gender != nil {
		query += fmt.Sprintf(" AND gender = $%d", argPos)
		args = append(args, *params.Gender)
		argPos++
	}
	if params.IsNew != nil {
		query += fmt.Sprintf(" AND is_new = $%d", argPos)
		args = append(args, *params.IsNew)
		argPos++
	}
	if params.IsSale != nil {
		query += fmt.Sprintf(" AND is_sale = $%d", argPos)
		args = append(args, *params.IsSale)
		argPos++
	}
	if params.Search != nil {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR brand ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*params.Search+"%")
		argPos++
	}

	query += " ORDER BY created_at DESC, id"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			logrus.WithError(err).Warn("ProductRepository: failed to scan product row")
			continue
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// Create inserts a new published product
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = models.ProductStatusPublished
	}

	query := `
		INSERT INTO products (id, name, brand, price_cents, original_price_cents, image, rating,
			is_new, is_sale, category, gender, description, sizes, status, drive_file_id, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, 0), $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''), NOW())
		RETURNING created_at
	`
	err := db.DB.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Brand, p.PriceCents, p.OriginalPriceCents, p.Image, p.Rating,
		p.IsNew, p.IsSale, p.Category, p.Gender, p.Description,
		strings.Join(p.Sizes, ","), p.Status, p.DriveFileID,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// Update applies the full update request to an existing product
func (r *ProductRepository) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	query := fmt.Sprintf(`
		UPDATE products
		SET name = $2, brand = $3, price_cents = $4, original_price_cents = NULLIF($5, 0),
			image = $6, rating = $7, is_new = $8, is_sale = $9, category = $10,
			gender = $11, description = $12, sizes = $13
		WHERE id = $1
		RETURNING %s
	`, productColumns)

	p, err := scanProduct(db.DB.QueryRowContext(ctx, query,
		id, req.Name, req.Brand, req.PriceCents, req.OriginalPriceCents,
		req.Image, req.Rating, req.IsNew, req.IsSale, req.Category,
		req.Gender, req.Description, strings.Join(req.Sizes, ","),
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistsByDriveFileID reports whether a product was already imported from the
// given Drive file
func (r *ProductRepository) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE drive_file_id = $1)`
	if err := db.DB.QueryRowContext(ctx, query, driveFileID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check drive file id: %w", err)
	}
	return exists, nil
}

// InsertPending inserts an imported product in pending status, awaiting
// completion by an admin
func (r *ProductRepository) InsertPending(ctx context.Context, p *models.Product) error {
	p.Status = models.ProductStatusPending
	return r.Create(ctx, p)
}

// ListPending lists products awaiting admin completion, oldest first
func (r *ProductRepository) ListPending(ctx context.Context) ([]models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE status = 'pending' ORDER BY created_at, id`, productColumns)

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			logrus.WithError(err).Warn("ProductRepository: failed to scan pending product row")
			continue
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending products: %w", err)
	}

	return products, nil
}

// Publish moves a pending product to published. A product without a price
// cannot be published.
func (r *ProductRepository) Publish(ctx context.Context, id string) (*models.Product, error) {
	query := fmt.Sprintf(`
		UPDATE products
		SET status = 'published'
		WHERE id = $1 AND status = 'pending' AND price_cents > 0
		RETURNING %s
	`, productColumns)

	p, err := scanProduct(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found, not pending, or has no price: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to publish product: %w", err)
	}
	return p, nil
}
