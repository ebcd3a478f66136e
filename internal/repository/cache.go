package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/easyshop/easyshop-backend/internal/config"
	"github.com/easyshop/easyshop-backend/internal/models"
)

const (
	orderKeyPrefix   = "order:"
	userOrdersPrefix = "user_orders:"
	productKeyPrefix = "product:"
	paymentKeyPrefix = "payment:"
	defaultCacheTTL  = 5 * time.Minute
)

// Ensure RedisCache implements the cache interfaces
var (
	_ OrderCache   = (*RedisCache)(nil)
	_ ProductCache = (*RedisCache)(nil)
	_ PaymentCache = (*RedisCache)(nil)
)

// RedisCache implements OrderCache and ProductCache using Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a new Redis-based cache.
func NewRedisCache(cfg config.RedisConfig, logger *zap.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("cache"),
	}
}

// Ping verifies connectivity to Redis.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get retrieves an order from cache. A miss returns (nil, nil).
func (c *RedisCache) Get(ctx context.Context, id string) (*models.Order, error) {
	key := orderKeyPrefix + id

	// TODO(TEAM-PLATFORM): Add metrics for cache hits/misses
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", zap.String("order_id", id))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error",
			zap.String("order_id", id),
			zap.Error(err))
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}

	c.logger.Debug("Cache hit", zap.String("order_id", id))
	return &order, nil
}

// Set stores an order in cache.
func (c *RedisCache) Set(ctx context.Context, order *models.Order) error {
	key := orderKeyPrefix + order.ID

	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return err
	}

	return nil
}

// Delete removes an order from cache.
func (c *RedisCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, orderKeyPrefix+id).Err()
}

// GetByUserID retrieves cached orders for a user. A miss returns (nil, nil).
func (c *RedisCache) GetByUserID(ctx context.Context, userID string) ([]*models.Order, error) {
	data, err := c.client.Get(ctx, userOrdersPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// SetByUserID caches orders for a user.
func (c *RedisCache) SetByUserID(ctx context.Context, userID string, orders []*models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, userOrdersPrefix+userID, data, c.ttl).Err()
}

// InvalidateByUserID removes cached orders for a user.
func (c *RedisCache) InvalidateByUserID(ctx context.Context, userID string) error {
	return c.client.Del(ctx, userOrdersPrefix+userID).Err()
}

// GetProduct retrieves a product from cache. A miss returns (nil, nil).
func (c *RedisCache) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	data, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// SetProduct stores a product in cache.
func (c *RedisCache) SetProduct(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, productKeyPrefix+product.ID, data, c.ttl).Err()
}

// DeleteProduct removes a product from cache.
func (c *RedisCache) DeleteProduct(ctx context.Context, id string) error {
	return c.client.Del(ctx, productKeyPrefix+id).Err()
}

// GetPayment retrieves a payment record from cache. A miss returns (nil, nil).
func (c *RedisCache) GetPayment(ctx context.Context, txnID string) (*models.PaymentRecord, error) {
	data, err := c.client.Get(ctx, paymentKeyPrefix+txnID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record models.PaymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// SetPayment stores a payment record in cache.
func (c *RedisCache) SetPayment(ctx context.Context, record *models.PaymentRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, paymentKeyPrefix+record.TransactionID, data, c.ttl).Err()
}

// DeletePayment removes a payment record from cache.
func (c *RedisCache) DeletePayment(ctx context.Context, txnID string) error {
	return c.client.Del(ctx, paymentKeyPrefix+txnID).Err()
}
