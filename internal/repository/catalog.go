package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/models"
)

// Ensure PostgresCatalogRepository implements ProductRepository
var _ ProductRepository = (*PostgresCatalogRepository)(nil)

// PostgresCatalogRepository implements ProductRepository using PostgreSQL.
type PostgresCatalogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresCatalogRepository creates a new PostgreSQL catalog repository.
func NewPostgresCatalogRepository(db *sql.DB, logger *zap.Logger) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db:     db,
		logger: logger.Named("catalog-repository"),
	}
}

// GetByID retrieves a product by its unique identifier.
func (r *PostgresCatalogRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT id, name, description, brand, price_amount, price_currency,
		       category_id, count_in_stock, is_featured, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p models.Product
	var description, brand sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&description,
		&brand,
		&p.Price.Amount,
		&p.Price.Currency,
		&p.CategoryID,
		&p.CountInStock,
		&p.IsFeatured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch product",
			zap.String("product_id", id),
			zap.Error(err))
		return nil, err
	}

	p.Description = description.String
	p.Brand = brand.String
	return &p, nil
}

// List retrieves products, optionally filtered by category or featured flag.
func (r *PostgresCatalogRepository) List(ctx context.Context, categoryID string, featuredOnly bool, limit, offset int) ([]*models.Product, int, error) {
	baseQuery := ` FROM products WHERE 1=1`
	args := make([]interface{}, 0)

	if categoryID != "" {
		args = append(args, categoryID)
		baseQuery += ` AND category_id = $1`
	}
	if featuredOnly {
		baseQuery += ` AND is_featured = TRUE`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	selectQuery := `
		SELECT id, name, description, brand, price_amount, price_currency,
		       category_id, count_in_stock, is_featured, created_at, updated_at
	` + baseQuery + ` ORDER BY created_at DESC`
	if categoryID != "" {
		selectQuery += ` LIMIT $2 OFFSET $3`
	} else {
		selectQuery += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		var p models.Product
		var description, brand sql.NullString
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&description,
			&brand,
			&p.Price.Amount,
			&p.Price.Currency,
			&p.CategoryID,
			&p.CountInStock,
			&p.IsFeatured,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		p.Description = description.String
		p.Brand = brand.String
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Create inserts a new product. The ID is assigned here if empty.
func (r *PostgresCatalogRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = "prod_" + uuid.NewString()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (
			id, name, description, brand, price_amount, price_currency,
			category_id, count_in_stock, is_featured, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Brand,
		product.Price.Amount,
		product.Price.Currency,
		product.CategoryID,
		product.CountInStock,
		product.IsFeatured,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product",
			zap.String("name", product.Name),
			zap.Error(err))
		return err
	}

	r.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))
	return nil
}

// Update replaces the mutable fields of a product.
func (r *PostgresCatalogRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()

	query := `
		UPDATE products
		SET name = $2, description = $3, brand = $4, price_amount = $5,
		    price_currency = $6, category_id = $7, count_in_stock = $8,
		    is_featured = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Brand,
		product.Price.Amount,
		product.Price.Currency,
		product.CategoryID,
		product.CountInStock,
		product.IsFeatured,
		product.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a product.
func (r *PostgresCatalogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

// ListCategories retrieves all categories.
func (r *PostgresCatalogRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, icon, color FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		var c models.Category
		var icon, color sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &icon, &color); err != nil {
			return nil, err
		}
		c.Icon = icon.String
		c.Color = color.String
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// GetCategory retrieves a category by ID.
func (r *PostgresCatalogRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	var icon, color sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, icon, color FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &icon, &color)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Icon = icon.String
	c.Color = color.String
	return &c, nil
}

// CreateCategory inserts a new category.
func (r *PostgresCatalogRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = "cat_" + uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, icon, color) VALUES ($1, $2, $3, $4)`,
		category.ID, category.Name, category.Icon, category.Color)
	if err != nil {
		r.logger.Error("Failed to create category",
			zap.String("name", category.Name),
			zap.Error(err))
		return err
	}
	return nil
}

// DeleteCategory removes a category.
func (r *PostgresCatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
