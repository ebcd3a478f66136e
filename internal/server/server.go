package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/easyshop/easyshop-backend/internal/config"
	"github.com/easyshop/easyshop-backend/internal/handlers"
	"github.com/easyshop/easyshop-backend/internal/metrics"
)

// Server wires the HTTP router and lifecycle.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	http     *http.Server
	logger   *zap.Logger
}

// NewServer builds the router with all routes registered.
func NewServer(cfg *config.Config, h *handlers.Handlers, m *metrics.Metrics, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	if m != nil {
		router.Use(m.GinMiddleware())
	}

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		logger:   logger.Named("server"),
	}

	s.setupRoutes()

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		telebirr := v1.Group("/telebirr")
		{
			telebirr.POST("/initiate-payment", s.handlers.InitiatePayment)
			telebirr.POST("/verify-payment", s.handlers.VerifyPayment)
			telebirr.GET("/payment-status/:transactionId", s.handlers.GetPaymentStatus)
			telebirr.POST("/webhook", s.handlers.TelebirrWebhook)
		}

		stripe := v1.Group("/stripe")
		{
			stripe.POST("/create-payment-intent", s.handlers.CreatePaymentIntent)
		}

		products := v1.Group("/products")
		{
			products.GET("", s.handlers.ListProducts)
			products.GET("/:id", s.handlers.GetProduct)

			admin := products.Group("", s.handlers.AuthRequired(), s.handlers.AdminRequired())
			admin.POST("", s.handlers.CreateProduct)
			admin.PUT("/:id", s.handlers.UpdateProduct)
			admin.DELETE("/:id", s.handlers.DeleteProduct)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", s.handlers.ListCategories)

			admin := categories.Group("", s.handlers.AuthRequired(), s.handlers.AdminRequired())
			admin.POST("", s.handlers.CreateCategory)
			admin.DELETE("/:id", s.handlers.DeleteCategory)
		}

		orders := v1.Group("/orders", s.handlers.AuthRequired())
		{
			orders.POST("", s.handlers.CreateOrder)
			orders.GET("/:id", s.handlers.GetOrder)
			orders.PATCH("/:id/status", s.handlers.UpdateOrderStatus)
			orders.POST("/:id/cancel", s.handlers.CancelOrder)
		}

		users := v1.Group("/users")
		{
			users.POST("/register", s.handlers.Register)
			users.POST("/login", s.handlers.Login)

			authed := users.Group("", s.handlers.AuthRequired())
			authed.GET("/:id", s.handlers.GetUser)
			authed.GET("/:id/orders", s.handlers.GetUserOrders)

			admin := users.Group("", s.handlers.AuthRequired(), s.handlers.AdminRequired())
			admin.GET("", s.handlers.ListUsers)
			admin.DELETE("/:id", s.handlers.DeleteUser)
		}
	}
}

// Router exposes the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.logger.Info("Starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.http.Shutdown(ctx)
}
