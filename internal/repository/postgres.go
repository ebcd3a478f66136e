package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/models"
)

// Ensure PostgresOrderRepository implements OrderRepository
var _ OrderRepository = (*PostgresOrderRepository)(nil)

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *zap.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: logger.Named("order-repository"),
	}
}

// GetByID retrieves an order by its unique identifier.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.logger.Debug("Fetching order by ID", zap.String("order_id", id))

	query := `
		SELECT id, user_id, status, items, shipping_address,
		       subtotal_amount, subtotal_currency, tax_amount, tax_currency,
		       total_amount, total_currency,
		       payment_id, notes, created_at, updated_at
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL
	`

	row := r.db.QueryRowContext(ctx, query, id)
	order, err := r.scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch order",
			zap.String("order_id", id),
			zap.Error(err))
		return nil, err
	}

	return order, nil
}

// Create persists a new order. The caller assigns pricing; IDs and
// timestamps are filled in here if missing.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.logger.Debug("Creating new order", zap.String("user_id", order.UserID))

	// TODO(TEAM-API): Add idempotency key support
	if order.ID == "" {
		order.ID = generateOrderID()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	shippingJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (
			id, user_id, status, items, shipping_address,
			subtotal_amount, subtotal_currency, tax_amount, tax_currency,
			total_amount, total_currency, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.Status,
		itemsJSON,
		shippingJSON,
		order.Subtotal.Amount,
		order.Subtotal.Currency,
		order.Tax.Amount,
		order.Tax.Currency,
		order.Total.Amount,
		order.Total.Currency,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order",
			zap.String("user_id", order.UserID),
			zap.Error(err))
		return err
	}

	r.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Float64("total", order.Total.Amount))

	return nil
}

// UpdateStatus updates the status of an order.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	r.logger.Debug("Updating order status",
		zap.String("order_id", id),
		zap.String("new_status", string(req.Status)))

	query := `
		UPDATE orders
		SET status = $2, notes = COALESCE(NULLIF($3, ''), notes), updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var returnedID string
	err := r.db.QueryRowContext(ctx, query, id, req.Status, req.Notes, time.Now()).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update order status",
			zap.String("order_id", id),
			zap.Error(err))
		return nil, err
	}

	r.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("new_status", string(req.Status)))

	return r.GetByID(ctx, id)
}

// GetByUserID retrieves orders for a specific user, newest first.
func (r *PostgresOrderRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Order, int, error) {
	r.logger.Debug("Listing orders",
		zap.String("user_id", userID),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	var total int
	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1 AND deleted_at IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, status, items, shipping_address,
		       subtotal_amount, subtotal_currency, tax_amount, tax_currency,
		       total_amount, total_currency,
		       payment_id, notes, created_at, updated_at
		FROM orders
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// SetPaymentID associates a payment with an order.
func (r *PostgresOrderRepository) SetPaymentID(ctx context.Context, orderID, paymentID string) error {
	query := `
		UPDATE orders
		SET payment_id = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, orderID, paymentID, time.Now())
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("Payment ID set",
		zap.String("order_id", orderID),
		zap.String("payment_id", paymentID))

	return nil
}

// Delete soft-deletes an order.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE orders
		SET deleted_at = $2, status = $3, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id, time.Now(), models.OrderStatusCancelled)
	if err != nil {
		r.logger.Error("Failed to delete order",
			zap.String("order_id", id),
			zap.Error(err))
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("Order deleted", zap.String("order_id", id))
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresOrderRepository) scanOrder(row scanner) (*models.Order, error) {
	var order models.Order
	var itemsJSON, shippingJSON []byte
	var paymentID, notes sql.NullString

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&itemsJSON,
		&shippingJSON,
		&order.Subtotal.Amount,
		&order.Subtotal.Currency,
		&order.Tax.Amount,
		&order.Tax.Currency,
		&order.Total.Amount,
		&order.Total.Currency,
		&paymentID,
		&notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(shippingJSON, &order.ShippingAddress); err != nil {
		return nil, err
	}

	if paymentID.Valid {
		order.PaymentID = paymentID.String
	}
	if notes.Valid {
		order.Notes = notes.String
	}

	return &order, nil
}

func generateOrderID() string {
	// TODO(TEAM-API): Use proper UUID or ULID generation
	return "ord_" + time.Now().Format("20060102150405")
}
