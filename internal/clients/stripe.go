package clients

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"

	"github.com/easyshop/easyshop-backend/internal/config"
	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/models"
)

// PaymentIntent is the client-facing result of intent creation.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// StripeClient wraps card payment operations against Stripe.
type StripeClient struct {
	currency string
	logger   *zap.Logger
}

// NewStripeClient configures the Stripe SDK and returns a client.
func NewStripeClient(cfg config.StripeConfig, logger *zap.Logger) (*StripeClient, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is not configured")
	}

	stripe.Key = cfg.SecretKey

	return &StripeClient{
		currency: cfg.Currency,
		logger:   logger.Named("stripe-client"),
	}, nil
}

// CreatePaymentIntent creates a payment intent for the given amount in the
// smallest currency unit.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, req *models.CreatePaymentIntentRequest) (*PaymentIntent, error) {
	if req.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount", "must be greater than zero")
	}

	currency := req.Currency
	if currency == "" {
		currency = c.currency
	}

	c.logger.Debug("Creating payment intent",
		zap.Int64("amount", req.Amount),
		zap.String("currency", currency))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.OrderID != "" {
		params.Metadata = map[string]string{"order_id": req.OrderID}
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		c.logger.Error("Failed to create payment intent",
			zap.Int64("amount", req.Amount),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	c.logger.Info("Payment intent created",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", intent.Amount))

	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Status:       string(intent.Status),
	}, nil
}
