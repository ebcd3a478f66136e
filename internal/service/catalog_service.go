package service

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/models"
	"github.com/easyshop/easyshop-backend/internal/repository"
)

// CatalogService handles product and category business logic.
type CatalogService struct {
	repo   repository.ProductRepository
	cache  repository.ProductCache
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, cache repository.ProductCache, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("catalog-service"),
	}
}

// GetProduct retrieves a product by ID, cache first.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if product, err := s.cache.GetProduct(ctx, id); err == nil && product != nil {
		return product, nil
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetProduct(ctx, product)
	return product, nil
}

// ListProducts retrieves products with optional category / featured filters.
func (s *CatalogService) ListProducts(ctx context.Context, categoryID string, featuredOnly bool, limit, offset int) ([]*models.Product, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return s.repo.List(ctx, categoryID, featuredOnly, limit, offset)
}

// CreateProduct validates and persists a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := ValidateCreateProductRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = paymentCurrency
	}

	product := &models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Brand:        req.Brand,
		Price:        models.NewMoney(req.Price, currency),
		CategoryID:   req.CategoryID,
		CountInStock: req.CountInStock,
		IsFeatured:   req.IsFeatured,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct validates and applies a product update.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *models.CreateProductRequest) (*models.Product, error) {
	if err := ValidateCreateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = product.Price.Currency
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Brand = req.Brand
	product.Price = models.NewMoney(req.Price, currency)
	product.CategoryID = req.CategoryID
	product.CountInStock = req.CountInStock
	product.IsFeatured = req.IsFeatured

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.cache.DeleteProduct(ctx, id)
	return product, nil
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.DeleteProduct(ctx, id)
	return nil
}

// ListCategories retrieves all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateCategory persists a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.Name == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	return s.repo.CreateCategory(ctx, category)
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}
