package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/easyshop/easyshop-backend/internal/clients"
	"github.com/easyshop/easyshop-backend/internal/config"
	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/service"
	"github.com/easyshop/easyshop-backend/internal/telebirr"
)

// Handlers holds all HTTP handlers for the service.
type Handlers struct {
	paymentService *service.PaymentService
	orderService   *service.OrderService
	catalogService *service.CatalogService
	userService    *service.UserService
	stripeClient   *clients.StripeClient
	config         *config.Config
	logger         *zap.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	paymentService *service.PaymentService,
	orderService *service.OrderService,
	catalogService *service.CatalogService,
	userService *service.UserService,
	stripeClient *clients.StripeClient,
	cfg *config.Config,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		paymentService: paymentService,
		orderService:   orderService,
		catalogService: catalogService,
		userService:    userService,
		stripeClient:   stripeClient,
		config:         cfg,
		logger:         logger.Named("handlers"),
	}
}

// respondOK writes the payment-style success envelope.
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// handleError maps service errors onto HTTP responses. All failures share
// the {success:false, message} shape so clients never see raw errors.
func handleError(c *gin.Context, err error) {
	switch {
	case err == apperrors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not found"})
	case err == apperrors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
	case err == apperrors.ErrAlreadyExists:
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "already exists"})
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		switch telebirr.KindOf(err) {
		case telebirr.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case telebirr.KindNetwork, telebirr.KindProvider, telebirr.KindProtocol:
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "payment provider unavailable"})
		case telebirr.KindConfiguration, telebirr.KindSigning:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "payment service misconfigured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		}
	}
}
