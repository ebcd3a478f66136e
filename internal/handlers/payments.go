package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/easyshop/easyshop-backend/internal/models"
)

// InitiatePayment handles POST /api/v1/telebirr/initiate-payment
func (h *Handlers) InitiatePayment(c *gin.Context) {
	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Failed to bind payment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	data, err := h.paymentService.InitiatePayment(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Payment initiated successfully", data)
}

// VerifyPayment handles POST /api/v1/telebirr/verify-payment
func (h *Handlers) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	status, err := h.paymentService.VerifyPayment(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Payment verified", status)
}

// GetPaymentStatus handles GET /api/v1/telebirr/payment-status/:transactionId
func (h *Handlers) GetPaymentStatus(c *gin.Context) {
	status, err := h.paymentService.GetPaymentStatus(c.Request.Context(), c.Param("transactionId"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Payment status retrieved", status)
}

// TelebirrWebhook handles POST /api/v1/telebirr/webhook
func (h *Handlers) TelebirrWebhook(c *gin.Context) {
	var notification models.PaymentWebhook
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	if err := h.paymentService.ProcessWebhook(c.Request.Context(), &notification); err != nil {
		handleError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Notification processed", nil)
}

// CreatePaymentIntent handles POST /api/v1/stripe/create-payment-intent
func (h *Handlers) CreatePaymentIntent(c *gin.Context) {
	var req models.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	if h.stripeClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "card payments are not enabled"})
		return
	}

	intent, err := h.stripeClient.CreatePaymentIntent(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Payment intent created", intent)
}
