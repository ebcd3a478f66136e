package repository

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/models"
)

// Ensure PostgresPaymentRepository implements PaymentRepository
var _ PaymentRepository = (*PostgresPaymentRepository)(nil)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL.
type PostgresPaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresPaymentRepository creates a new PostgreSQL payment repository.
func NewPostgresPaymentRepository(db *sql.DB, logger *zap.Logger) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db:     db,
		logger: logger.Named("payment-repository"),
	}
}

// Create inserts a new payment record.
func (r *PostgresPaymentRepository) Create(ctx context.Context, record *models.PaymentRecord) error {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	query := `
		INSERT INTO payments (
			transaction_id, order_id, prepay_id, provider, status,
			amount, currency, phone_number, customer_name, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.TransactionID,
		record.OrderID,
		record.PrepayID,
		record.Provider,
		record.Status,
		record.Amount,
		record.Currency,
		record.PhoneNumber,
		record.CustomerName,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create payment record",
			zap.String("transaction_id", record.TransactionID),
			zap.Error(err))
		return err
	}

	r.logger.Info("Payment record created",
		zap.String("transaction_id", record.TransactionID),
		zap.String("order_id", record.OrderID),
		zap.String("provider", record.Provider))

	return nil
}

// GetByTransactionID retrieves a payment record by transaction ID.
func (r *PostgresPaymentRepository) GetByTransactionID(ctx context.Context, txnID string) (*models.PaymentRecord, error) {
	return r.getOne(ctx, `WHERE transaction_id = $1`, txnID)
}

// GetByOrderID retrieves the latest payment record for an order.
func (r *PostgresPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*models.PaymentRecord, error) {
	return r.getOne(ctx, `WHERE order_id = $1 ORDER BY created_at DESC LIMIT 1`, orderID)
}

func (r *PostgresPaymentRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.PaymentRecord, error) {
	query := `
		SELECT transaction_id, order_id, prepay_id, provider, status,
		       amount, currency, phone_number, customer_name, created_at, updated_at
		FROM payments ` + where

	var rec models.PaymentRecord
	var prepayID, phone, customer sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&rec.TransactionID,
		&rec.OrderID,
		&prepayID,
		&rec.Provider,
		&rec.Status,
		&rec.Amount,
		&rec.Currency,
		&phone,
		&customer,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec.PrepayID = prepayID.String
	rec.PhoneNumber = phone.String
	rec.CustomerName = customer.String
	return &rec, nil
}

// UpdateStatus moves a payment record to a new status.
func (r *PostgresPaymentRepository) UpdateStatus(ctx context.Context, txnID, status string) error {
	query := `
		UPDATE payments
		SET status = $2, updated_at = $3
		WHERE transaction_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, txnID, status, time.Now())
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("Payment status updated",
		zap.String("transaction_id", txnID),
		zap.String("status", status))

	return nil
}
