package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/easyshop/easyshop-backend/internal/clients"
	"github.com/easyshop/easyshop-backend/internal/config"
	"github.com/easyshop/easyshop-backend/internal/events"
	"github.com/easyshop/easyshop-backend/internal/handlers"
	"github.com/easyshop/easyshop-backend/internal/logging"
	"github.com/easyshop/easyshop-backend/internal/metrics"
	"github.com/easyshop/easyshop-backend/internal/repository"
	"github.com/easyshop/easyshop-backend/internal/server"
	"github.com/easyshop/easyshop-backend/internal/service"
	"github.com/easyshop/easyshop-backend/internal/telebirr"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger := logging.New("easyshop-backend")
	defer logger.Sync()

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	cache := repository.NewRedisCache(cfg.Redis, logger)
	defer cache.Close()

	orderRepo := repository.NewPostgresOrderRepository(db, logger)
	catalogRepo := repository.NewPostgresCatalogRepository(db, logger)
	userRepo := repository.NewPostgresUserRepository(db, logger)
	paymentRepo := repository.NewPostgresPaymentRepository(db, logger)

	publisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer publisher.Close()

	provider, err := buildPaymentProvider(cfg.Telebirr, logger)
	if err != nil {
		logger.Fatal("Failed to configure payment provider", zap.Error(err))
	}

	var stripeClient *clients.StripeClient
	if cfg.Stripe.SecretKey != "" {
		stripeClient, err = clients.NewStripeClient(cfg.Stripe, logger)
		if err != nil {
			logger.Fatal("Failed to configure Stripe", zap.Error(err))
		}
	} else {
		logger.Warn("Stripe secret key not set, card payments disabled")
	}

	m := metrics.New()

	paymentService := service.NewPaymentService(provider, paymentRepo, cache, orderRepo, publisher, m, logger)
	orderService := service.NewOrderService(orderRepo, cache, publisher, m, logger)
	catalogService := service.NewCatalogService(catalogRepo, cache, logger)
	userService := service.NewUserService(userRepo, cfg.Auth, logger)

	h := handlers.NewHandlers(paymentService, orderService, catalogService, userService, stripeClient, cfg, logger)

	srv := server.NewServer(cfg, h, m, logger)

	go func() {
		logger.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("telebirr_mock", provider.IsMock()))
		if err := srv.Run(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// buildPaymentProvider selects the live or mock provider once at startup.
// A live provider requires a resolvable signing key; when mock mode is on
// and no key is present, signing itself is mocked.
func buildPaymentProvider(cfg config.TelebirrConfig, logger *zap.Logger) (telebirr.Provider, error) {
	if cfg.UseMock {
		logger.Warn("Telebirr mock provider enabled, no real payments will be made")
		return telebirr.NewMockProvider(cfg.MockDelay), nil
	}

	key, err := telebirr.ResolveSigningKey(os.Getenv, os.ReadFile, cfg.UseMockSigning)
	if err != nil {
		return nil, err
	}
	if key == nil {
		logger.Warn("Telebirr signing key not found, using mock signatures")
	}

	signer := telebirr.NewSigner(key, key == nil || cfg.UseMockSigning)

	clientCfg := telebirr.Config{
		BaseURL:       cfg.BaseURL,
		WebBaseURL:    cfg.WebBaseURL,
		AppID:         cfg.AppID,
		FabricAppID:   cfg.FabricAppID,
		MerchantAppID: cfg.MerchantAppID,
		MerchantCode:  cfg.MerchantCode,
		NotifyURL:     cfg.NotifyURL,
		RedirectURL:   cfg.RedirectURL,
		Timeout:       cfg.Timeout,
	}

	return telebirr.NewClient(clientCfg, signer, logger), nil
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	// TODO(TEAM-PLATFORM): Run migrations automatically in development
	logger.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name))

	return db, nil
}
