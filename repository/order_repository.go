package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"stride-store/db"
	"stride-store/models"
)

// OrderRepository handles database operations for orders
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// Create inserts an order and its line snapshot atomically in a single
// transaction
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (*models.Order, error) {
	logrus.WithFields(logrus.Fields{
		"orderNumber": order.OrderNumber,
		"userId":      order.UserID,
		"lines":       len(lines),
	}).Info("OrderRepository: creating order")

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryOrder := `
		INSERT INTO orders (order_number, user_id, status, total_cents, payment_session_id, payment_method, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NOW())
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, queryOrder,
		order.OrderNumber, order.UserID, order.Status, order.TotalCents,
		order.PaymentSessionID, order.PaymentMethod,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	queryLine := `
		INSERT INTO order_lines (order_id, line_item_id, name, brand, price_cents, image, color, size, qty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	for i := range lines {
		lines[i].OrderID = order.ID
		err = tx.QueryRowContext(ctx, queryLine,
			order.ID, lines[i].LineItemID, lines[i].Name, lines[i].Brand,
			lines[i].PriceCents, lines[i].Image, lines[i].Color, lines[i].Size, lines[i].Qty,
		).Scan(&lines[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.TotalCents,
		&o.PaymentSessionID, &o.PaymentMethod, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

const orderColumns = `id, order_number, user_id, status, total_cents,
	COALESCE(payment_session_id, ''), COALESCE(payment_method, ''), created_at`

// GetByOrderNumber fetches an order with its lines
func (r *OrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.OrderResponse, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE order_number = $1`, orderColumns)

	o, err := scanOrder(db.DB.QueryRowContext(ctx, query, orderNumber))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	queryLines := `
		SELECT id, order_id, line_item_id, name, brand, price_cents,
			COALESCE(image, ''), COALESCE(color, ''), COALESCE(size, ''), qty
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := db.DB.QueryContext(ctx, queryLines, o.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order lines: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.LineItemID, &l.Name, &l.Brand,
			&l.PriceCents, &l.Image, &l.Color, &l.Size, &l.Qty); err != nil {
			logrus.WithError(err).Warn("OrderRepository: failed to scan order line")
			continue
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}

	return &models.OrderResponse{Order: *o, Lines: lines}, nil
}

// GetByPaymentSession fetches an order by its payment session id
func (r *OrderRepository) GetByPaymentSession(ctx context.Context, sessionID string) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE payment_session_id = $1`, orderColumns)

	o, err := scanOrder(db.DB.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch order by payment session: %w", err)
	}
	return o, nil
}

// ListByUser lists a user's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, orderColumns)

	rows, err := db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			logrus.WithError(err).Warn("OrderRepository: failed to scan order row")
			continue
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

// MarkPaid transitions a pending order to paid. The row is locked so a
// concurrent verification of the same session cannot double-apply.
func (r *OrderRepository) MarkPaid(ctx context.Context, orderNumber string) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE order_number = $1 FOR UPDATE`, orderNumber,
	).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock order: %w", err)
	}

	if status == models.OrderStatusPaid {
		// Already paid, nothing to do.
		return nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = 'paid' WHERE order_number = $1`, orderNumber,
	); err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
