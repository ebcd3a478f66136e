package telebirr

import (
	"context"
	"time"
)

// Config holds the merchant-side Fabric API settings. Loaded once at
// startup and immutable afterwards.
type Config struct {
	BaseURL       string
	AppID         string
	FabricAppID   string
	MerchantCode  string
	MerchantAppID string
	NotifyURL     string
	RedirectURL   string
	WebBaseURL    string
	Timeout       time.Duration
}

// TokenResult is the outcome of a token application.
type TokenResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// PreOrderResult is the outcome of a pre-order creation: a short-lived
// prepay ticket that is consumed immediately to build the redirect URL
// and never persisted.
type PreOrderResult struct {
	PrepayID        string
	MerchantOrderID string
}

// Provider is the capability set the payment orchestrator depends on.
// The live Fabric client and the mock implementation are interchangeable
// behind it; which one runs is decided once at startup, never by
// per-call-site branching.
type Provider interface {
	// ApplyFabricToken exchanges application credentials for a short-lived
	// bearer token that authorizes the pre-order call.
	ApplyFabricToken(ctx context.Context) (*TokenResult, error)

	// CreatePreOrder reserves a payment with the provider and returns the
	// prepay ticket. The token must come from ApplyFabricToken; pre-order
	// must never be attempted without one.
	CreatePreOrder(ctx context.Context, token string, order PreOrder) (*PreOrderResult, error)

	// PaymentURL assembles the final checkout redirect URL for a prepay id.
	PaymentURL(prepayID string) (string, error)

	// IsMock reports whether responses are synthetic.
	IsMock() bool
}
