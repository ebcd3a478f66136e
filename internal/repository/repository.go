package repository

import (
	"context"

	"github.com/easyshop/easyshop-backend/internal/models"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Order, int, error)
	SetPaymentID(ctx context.Context, orderID, paymentID string) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, categoryID string, featuredOnly bool, limit, offset int) ([]*models.Product, int, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, limit, offset int) ([]*models.User, int, error)
	Delete(ctx context.Context, id string) error
}

// PaymentRepository defines persistence operations for payment records.
type PaymentRepository interface {
	Create(ctx context.Context, record *models.PaymentRecord) error
	GetByTransactionID(ctx context.Context, txnID string) (*models.PaymentRecord, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.PaymentRecord, error)
	UpdateStatus(ctx context.Context, txnID, status string) error
}

// PaymentCache defines caching operations for payment records.
type PaymentCache interface {
	GetPayment(ctx context.Context, txnID string) (*models.PaymentRecord, error)
	SetPayment(ctx context.Context, record *models.PaymentRecord) error
	DeletePayment(ctx context.Context, txnID string) error
}

// OrderCache defines caching operations for orders.
type OrderCache interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	Set(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error
	GetByUserID(ctx context.Context, userID string) ([]*models.Order, error)
	SetByUserID(ctx context.Context, userID string, orders []*models.Order) error
	InvalidateByUserID(ctx context.Context, userID string) error
}

// ProductCache defines caching operations for the catalog.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}
