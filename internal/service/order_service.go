package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/events"
	"github.com/easyshop/easyshop-backend/internal/metrics"
	"github.com/easyshop/easyshop-backend/internal/models"
	"github.com/easyshop/easyshop-backend/internal/repository"
)

// OrderService handles order business logic.
type OrderService struct {
	orderRepo repository.OrderRepository
	cache     repository.OrderCache
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cache repository.OrderCache,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
		logger:    logger.Named("order-service"),
	}
}

// CreateOrder validates, prices and persists a new order.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	s.logger.Info("Creating order",
		zap.String("user_id", req.UserID),
		zap.Int("item_count", len(req.Items)))

	if err := ValidateCreateOrderRequest(req); err != nil {
		return nil, err
	}

	currency := req.Items[0].UnitPrice.Currency
	subtotal := decimal.Zero
	for i := range req.Items {
		item := &req.Items[i]
		lineTotal := decimal.NewFromFloat(item.UnitPrice.Amount).
			Mul(decimal.NewFromInt(int64(item.Quantity))).
			Round(2)
		item.Total = models.NewMoney(lineTotal.InexactFloat64(), item.UnitPrice.Currency)
		subtotal = subtotal.Add(lineTotal)
	}

	totals := CalculateOrderTotal(subtotal.InexactFloat64(), defaultTaxRate)

	order := &models.Order{
		UserID:          req.UserID,
		Status:          models.OrderStatusPending,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		Subtotal:        models.NewMoney(totals.Subtotal, currency),
		Tax:             models.NewMoney(totals.Tax, currency),
		Total:           models.NewMoney(totals.Total, currency),
		Notes:           SanitizeNotes(req.Notes),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order",
			zap.String("user_id", req.UserID),
			zap.Error(err))
		return nil, err
	}

	if err := s.cache.Set(ctx, order); err != nil {
		s.logger.Warn("Failed to cache order",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
	s.cache.InvalidateByUserID(ctx, order.UserID)

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Warn("Failed to publish order created event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	} else if s.metrics != nil {
		s.metrics.EventPublished(string(events.EventTypeOrderCreated))
	}
	if s.metrics != nil {
		s.metrics.OrderCreated()
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total.Amount))

	return order, nil
}

// GetOrder retrieves an order by ID, cache first.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	if order, err := s.cache.Get(ctx, id); err == nil && order != nil {
		return order, nil
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, order)
	return order, nil
}

// UpdateOrderStatus moves an order through its state machine.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := ValidateUpdateOrderStatusRequest(req); err != nil {
		return nil, err
	}

	current, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf(
			"invalid status transition from %s to %s", current.Status, req.Status))
	}

	previousStatus := current.Status
	req.Notes = SanitizeNotes(req.Notes)

	order, err := s.orderRepo.UpdateStatus(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, id)
	s.cache.InvalidateByUserID(ctx, order.UserID)

	if err := s.publisher.PublishOrderStatusChanged(ctx, order, previousStatus); err != nil {
		s.logger.Warn("Failed to publish status change event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	} else if s.metrics != nil {
		s.metrics.EventPublished(string(events.EventTypeOrderStatusChanged))
	}

	return order, nil
}

// GetUserOrders retrieves orders for a specific user, cache first for
// the first page.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string, limit, offset int) ([]*models.Order, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	if offset == 0 {
		if orders, err := s.cache.GetByUserID(ctx, userID); err == nil && orders != nil {
			return orders, len(orders), nil
		}
	}

	orders, total, err := s.orderRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if offset == 0 {
		s.cache.SetByUserID(ctx, userID, orders)
	}

	return orders, total, nil
}

// CancelOrder cancels an order if its state allows it.
func (s *OrderService) CancelOrder(ctx context.Context, id, reason string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
		return nil, apperrors.NewValidationError("status", "order cannot be cancelled in current state")
	}

	return s.UpdateOrderStatus(ctx, id, &models.UpdateOrderStatusRequest{
		Status: models.OrderStatusCancelled,
		Notes:  reason,
	})
}
