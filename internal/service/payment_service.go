package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/events"
	"github.com/easyshop/easyshop-backend/internal/metrics"
	"github.com/easyshop/easyshop-backend/internal/models"
	"github.com/easyshop/easyshop-backend/internal/repository"
	"github.com/easyshop/easyshop-backend/internal/telebirr"
)

const paymentCurrency = "ETB"

// PaymentService orchestrates mobile-money payments: it drives the
// provider through the token / pre-order / redirect-URL sequence and keeps
// a local payment record for later verification.
type PaymentService struct {
	provider    telebirr.Provider
	paymentRepo repository.PaymentRepository
	cache       repository.PaymentCache
	orderRepo   repository.OrderRepository
	publisher   events.Publisher
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	provider telebirr.Provider,
	paymentRepo repository.PaymentRepository,
	cache repository.PaymentCache,
	orderRepo repository.OrderRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		provider:    provider,
		paymentRepo: paymentRepo,
		cache:       cache,
		orderRepo:   orderRepo,
		publisher:   publisher,
		metrics:     m,
		logger:      logger.Named("payment-service"),
		now:         time.Now,
	}
}

// InitiatePayment runs the full payment handshake: apply for a gateway
// token, create a pre-order, and build the checkout redirect URL.
func (s *PaymentService) InitiatePayment(ctx context.Context, req *models.InitiatePaymentRequest) (*models.PaymentData, error) {
	if err := ValidateInitiatePaymentRequest(req); err != nil {
		return nil, err
	}

	start := s.now()
	s.logger.Info("Initiating payment",
		zap.Float64("amount", req.Amount),
		zap.String("order_id", req.OrderID),
		zap.Bool("mock", s.provider.IsMock()))

	token, err := s.provider.ApplyFabricToken(ctx)
	if err != nil {
		s.observeOutcome("failure", start)
		s.logger.Error("Token acquisition failed", zap.Error(err))
		return nil, err
	}

	title := req.Description
	if title == "" {
		title = "EasyShop order"
	}

	preOrder, err := s.provider.CreatePreOrder(ctx, token.Token, telebirr.PreOrder{
		Title:  title,
		Amount: decimal.NewFromFloat(req.Amount),
	})
	if err != nil {
		s.observeOutcome("failure", start)
		s.logger.Error("Pre-order creation failed", zap.Error(err))
		return nil, err
	}

	paymentURL, err := s.provider.PaymentURL(preOrder.PrepayID)
	if err != nil {
		s.observeOutcome("failure", start)
		return nil, err
	}

	txnID := fmt.Sprintf("TXN_%d", s.now().UnixMilli())
	orderID := req.OrderID
	if orderID == "" {
		orderID = preOrder.MerchantOrderID
	}

	record := &models.PaymentRecord{
		TransactionID: txnID,
		OrderID:       orderID,
		PrepayID:      preOrder.PrepayID,
		Provider:      s.providerName(),
		Status:        models.PaymentStatusPending,
		Amount:        req.Amount,
		Currency:      paymentCurrency,
		PhoneNumber:   req.PhoneNumber,
		CustomerName:  req.CustomerName,
	}

	// The provider already accepted the pre-order, so a local bookkeeping
	// failure must not fail the payment.
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		s.logger.Warn("Failed to persist payment record",
			zap.String("transaction_id", txnID),
			zap.Error(err))
	}
	if err := s.cache.SetPayment(ctx, record); err != nil {
		s.logger.Warn("Failed to cache payment record",
			zap.String("transaction_id", txnID),
			zap.Error(err))
	}

	if req.OrderID != "" {
		if err := s.orderRepo.SetPaymentID(ctx, req.OrderID, txnID); err != nil {
			s.logger.Warn("Failed to link payment to order",
				zap.String("order_id", req.OrderID),
				zap.Error(err))
		}
	}

	if err := s.publisher.PublishPaymentInitiated(ctx, record); err != nil {
		s.logger.Warn("Failed to publish payment event", zap.Error(err))
	} else if s.metrics != nil {
		s.metrics.EventPublished(string(events.EventTypePaymentInitiated))
	}

	s.observeOutcome("success", start)
	s.logger.Info("Payment initiated",
		zap.String("transaction_id", txnID),
		zap.String("prepay_id", preOrder.PrepayID),
		zap.String("order_id", orderID))

	return &models.PaymentData{
		PaymentURL:    paymentURL,
		OrderID:       orderID,
		Amount:        req.Amount,
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		TransactionID: txnID,
		PrepayID:      preOrder.PrepayID,
		IsMock:        s.provider.IsMock(),
	}, nil
}

// VerifyPayment reports the state of a payment identified by transaction
// ID or order ID. In live mode the state reflects the local record, which
// webhooks keep current; the mock gateway has no pending state, so mock
// mode always resolves to completed, even for identifiers it never issued.
func (s *PaymentService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.PaymentStatus, error) {
	if err := ValidateVerifyPaymentRequest(req); err != nil {
		return nil, err
	}

	if s.provider.IsMock() {
		return s.mockCompletedStatus(ctx, req.TransactionID, req.OrderID), nil
	}

	var record *models.PaymentRecord
	var err error
	if req.TransactionID != "" {
		record, err = s.getByTransactionID(ctx, req.TransactionID)
	} else {
		record, err = s.paymentRepo.GetByOrderID(ctx, req.OrderID)
	}
	if err != nil {
		return nil, err
	}

	return s.statusFromRecord(record), nil
}

// GetPaymentStatus retrieves payment state by transaction ID. Mock mode
// resolves completed, same as VerifyPayment.
func (s *PaymentService) GetPaymentStatus(ctx context.Context, txnID string) (*models.PaymentStatus, error) {
	if txnID == "" {
		return nil, apperrors.NewValidationError("transactionId", "transaction ID is required")
	}

	if s.provider.IsMock() {
		return s.mockCompletedStatus(ctx, txnID, ""), nil
	}

	record, err := s.getByTransactionID(ctx, txnID)
	if err != nil {
		return nil, err
	}

	return s.statusFromRecord(record), nil
}

// ProcessWebhook applies a provider payment notification: it updates the
// payment record and, on completion, confirms the linked order.
func (s *PaymentService) ProcessWebhook(ctx context.Context, notification *models.PaymentWebhook) error {
	if notification.TransactionID == "" {
		return apperrors.NewValidationError("transactionId", "transaction ID is required")
	}

	status := notification.Status
	switch status {
	case models.PaymentStatusCompleted, models.PaymentStatusFailed, models.PaymentStatusPending:
	default:
		return apperrors.NewValidationError("status", "unknown payment status")
	}

	s.logger.Info("Processing payment notification",
		zap.String("transaction_id", notification.TransactionID),
		zap.String("status", status))

	if err := s.paymentRepo.UpdateStatus(ctx, notification.TransactionID, status); err != nil {
		return err
	}
	s.cache.DeletePayment(ctx, notification.TransactionID)

	if status != models.PaymentStatusCompleted {
		return nil
	}

	record, err := s.paymentRepo.GetByTransactionID(ctx, notification.TransactionID)
	if err != nil {
		return err
	}

	if record.OrderID != "" {
		_, err := s.orderRepo.UpdateStatus(ctx, record.OrderID, &models.UpdateOrderStatusRequest{
			Status: models.OrderStatusConfirmed,
		})
		if err != nil && err != apperrors.ErrNotFound {
			s.logger.Warn("Failed to confirm order after payment",
				zap.String("order_id", record.OrderID),
				zap.Error(err))
		}
	}

	if err := s.publisher.PublishPaymentCompleted(ctx, record); err != nil {
		s.logger.Warn("Failed to publish payment event", zap.Error(err))
	} else if s.metrics != nil {
		s.metrics.EventPublished(string(events.EventTypePaymentCompleted))
	}

	return nil
}

// mockCompletedStatus builds the completed status the mock gateway
// reports for any identifier. A local record, when one exists, supplies
// the real amounts; unknown identifiers still resolve.
func (s *PaymentService) mockCompletedStatus(ctx context.Context, txnID, orderID string) *models.PaymentStatus {
	var record *models.PaymentRecord
	if txnID != "" {
		record, _ = s.getByTransactionID(ctx, txnID)
	} else {
		record, _ = s.paymentRepo.GetByOrderID(ctx, orderID)
	}
	if record != nil {
		status := s.statusFromRecord(record)
		status.Status = models.PaymentStatusCompleted
		return status
	}

	return &models.PaymentStatus{
		TransactionID: txnID,
		OrderID:       orderID,
		Status:        models.PaymentStatusCompleted,
		Currency:      paymentCurrency,
		Timestamp:     s.now(),
		PaymentMethod: s.providerName(),
		IsMock:        true,
	}
}

// getByTransactionID resolves a payment record, cache first.
func (s *PaymentService) getByTransactionID(ctx context.Context, txnID string) (*models.PaymentRecord, error) {
	if record, err := s.cache.GetPayment(ctx, txnID); err == nil && record != nil {
		return record, nil
	}

	record, err := s.paymentRepo.GetByTransactionID(ctx, txnID)
	if err != nil {
		return nil, err
	}

	s.cache.SetPayment(ctx, record)
	return record, nil
}

func (s *PaymentService) statusFromRecord(record *models.PaymentRecord) *models.PaymentStatus {
	return &models.PaymentStatus{
		TransactionID: record.TransactionID,
		OrderID:       record.OrderID,
		Status:        record.Status,
		Amount:        record.Amount,
		Currency:      record.Currency,
		Timestamp:     record.UpdatedAt,
		PaymentMethod: record.Provider,
		IsMock:        s.provider.IsMock(),
	}
}

func (s *PaymentService) providerName() string {
	if s.provider.IsMock() {
		return "telebirr-mock"
	}
	return "telebirr"
}

func (s *PaymentService) observeOutcome(outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObservePayment(s.providerName(), outcome, s.now().Sub(start))
}
