package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/events"
	"github.com/easyshop/easyshop-backend/internal/models"
)

func newOrderService(repo *fakeOrderRepo, publisher *events.MockPublisher) *OrderService {
	return NewOrderService(repo, fakeOrderCache{}, publisher, nil, zap.NewNop())
}

func validOrderRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		UserID: "usr_1",
		Items: []models.OrderItem{
			{
				ProductID:   "prod_1",
				ProductName: "Yirgacheffe Beans",
				Quantity:    2,
				UnitPrice:   models.Money{Amount: 100.00, Currency: "ETB"},
			},
			{
				ProductID:   "prod_2",
				ProductName: "Jebena",
				Quantity:    1,
				UnitPrice:   models.Money{Amount: 50.00, Currency: "ETB"},
			},
		},
		ShippingAddress: models.Address{
			Line1:   "Bole Road",
			City:    "Addis Ababa",
			Country: "ET",
		},
	}
}

func TestCreateOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	publisher := events.NewMockPublisher()
	svc := newOrderService(repo, publisher)

	order, err := svc.CreateOrder(context.Background(), validOrderRequest())
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	if order.ID == "" {
		t.Error("Expected order ID to be assigned")
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("Expected pending status, got %s", order.Status)
	}
	if order.Subtotal.Amount != 250.00 {
		t.Errorf("Expected subtotal 250.00, got %v", order.Subtotal.Amount)
	}
	if order.Tax.Amount != 37.50 {
		t.Errorf("Expected tax 37.50, got %v", order.Tax.Amount)
	}
	if order.Total.Amount != 287.50 {
		t.Errorf("Expected total 287.50, got %v", order.Total.Amount)
	}
	if order.Items[0].Total.Amount != 200.00 {
		t.Errorf("Expected line total 200.00, got %v", order.Items[0].Total.Amount)
	}

	if len(publisher.Events) != 1 || publisher.Events[0].Type != events.EventTypeOrderCreated {
		t.Errorf("Expected one order.created event, got %v", publisher.Events)
	}
}

func TestCreateOrder_InvalidRequest(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(), events.NewMockPublisher())

	req := validOrderRequest()
	req.Items = nil

	_, err := svc.CreateOrder(context.Background(), req)
	if !apperrors.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestCreateOrder_SanitizesNotes(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(), events.NewMockPublisher())

	req := validOrderRequest()
	req.Notes = "<b>ring the bell</b>"

	order, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if order.Notes != "&lt;b&gt;ring the bell&lt;/b&gt;" {
		t.Errorf("Expected sanitized notes, got %q", order.Notes)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	publisher := events.NewMockPublisher()
	svc := newOrderService(repo, publisher)

	order := &models.Order{UserID: "usr_1", Status: models.OrderStatusPending}
	repo.Create(context.Background(), order)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, &models.UpdateOrderStatusRequest{
		Status: models.OrderStatusConfirmed,
	})
	if err != nil {
		t.Fatalf("UpdateOrderStatus() error = %v", err)
	}
	if updated.Status != models.OrderStatusConfirmed {
		t.Errorf("Expected confirmed, got %s", updated.Status)
	}

	if len(publisher.Events) != 1 || publisher.Events[0].Type != events.EventTypeOrderStatusChanged {
		t.Errorf("Expected one order.status_changed event, got %v", publisher.Events)
	}
}

func TestUpdateOrderStatus_RejectsInvalidTransition(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newOrderService(repo, events.NewMockPublisher())

	order := &models.Order{UserID: "usr_1", Status: models.OrderStatusPending}
	repo.Create(context.Background(), order)

	_, err := svc.UpdateOrderStatus(context.Background(), order.ID, &models.UpdateOrderStatusRequest{
		Status: models.OrderStatusDelivered,
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("Expected validation error for pending -> delivered, got %v", err)
	}
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(), events.NewMockPublisher())

	_, err := svc.UpdateOrderStatus(context.Background(), "ord_missing", &models.UpdateOrderStatusRequest{
		Status: models.OrderStatusConfirmed,
	})
	if err != apperrors.ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCancelOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newOrderService(repo, events.NewMockPublisher())

	order := &models.Order{UserID: "usr_1", Status: models.OrderStatusPending}
	repo.Create(context.Background(), order)

	cancelled, err := svc.CancelOrder(context.Background(), order.ID, "changed my mind")
	if err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}
	if cancelled.Status != models.OrderStatusCancelled {
		t.Errorf("Expected cancelled, got %s", cancelled.Status)
	}
}

func TestCancelOrder_DeliveredOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newOrderService(repo, events.NewMockPublisher())

	order := &models.Order{UserID: "usr_1", Status: models.OrderStatusDelivered}
	repo.Create(context.Background(), order)

	_, err := svc.CancelOrder(context.Background(), order.ID, "")
	if !apperrors.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestGetUserOrders_CapsLimit(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newOrderService(repo, events.NewMockPublisher())

	order := &models.Order{UserID: "usr_1", Status: models.OrderStatusPending}
	repo.Create(context.Background(), order)

	orders, total, err := svc.GetUserOrders(context.Background(), "usr_1", 500, 10)
	if err != nil {
		t.Fatalf("GetUserOrders() error = %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Errorf("Expected one order, got %d (total %d)", len(orders), total)
	}
}
