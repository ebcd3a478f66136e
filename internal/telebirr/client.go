package telebirr

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	tokenPath    = "/payment/v1/token"
	preOrderPath = "/payment/v1/merchant/preOrder"

	defaultTimeout = 30 * time.Second
)

// Ensure Client implements Provider
var _ Provider = (*Client)(nil)

// Client is the live Fabric API client. It performs no retries; retry
// policy belongs to the caller, guided by the error kind.
type Client struct {
	cfg        Config
	signer     *Signer
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a live Fabric client.
func NewClient(cfg Config, signer *Signer, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		signer: signer,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("telebirr-client"),
	}
}

func (c *Client) IsMock() bool { return false }

// ApplyFabricToken exchanges the app credentials for a fabric token.
func (c *Client) ApplyFabricToken(ctx context.Context) (*TokenResult, error) {
	req, err := NewTokenRequest(c.signer, c.cfg.AppID)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, tokenPath, req, "")
	if err != nil {
		return nil, err
	}

	var result TokenResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, WrapError(KindProtocol, err, "token response is not valid JSON")
	}
	if result.Token == "" {
		return nil, Errorf(KindProtocol, "token response carries no token: %s", truncate(body, 256))
	}

	c.logger.Debug("Fabric token acquired", zap.Int64("expires_in", result.ExpiresIn))
	return &result, nil
}

// CreatePreOrder creates a pre-order using a previously acquired token.
func (c *Client) CreatePreOrder(ctx context.Context, token string, order PreOrder) (*PreOrderResult, error) {
	req, merchOrderID, err := NewPreOrderRequest(c.signer, c.cfg, order)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, preOrderPath, req, token)
	if err != nil {
		return nil, err
	}

	var result struct {
		BizContent struct {
			PrepayID string `json:"prepay_id"`
		} `json:"biz_content"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, WrapError(KindProtocol, err, "pre-order response is not valid JSON")
	}
	if result.BizContent.PrepayID == "" {
		return nil, Errorf(KindProtocol, "pre-order response carries no prepay_id: %s", truncate(body, 256))
	}

	c.logger.Info("Pre-order created",
		zap.String("merch_order_id", merchOrderID),
		zap.String("prepay_id", result.BizContent.PrepayID))

	return &PreOrderResult{
		PrepayID:        result.BizContent.PrepayID,
		MerchantOrderID: merchOrderID,
	}, nil
}

// PaymentURL builds the final checkout URL for a prepay id. The query
// field order and the trailing version/trade_type parameters must be
// reproduced exactly for the checkout page to accept the redirect.
func (c *Client) PaymentURL(prepayID string) (string, error) {
	query, err := NewRedirectQuery(c.signer, c.cfg.MerchantAppID, c.cfg.MerchantCode, prepayID)
	if err != nil {
		return "", err
	}
	return c.cfg.WebBaseURL + "?" + query + "&version=" + apiVersion + "&trade_type=" + tradeTypeCheckout, nil
}

func (c *Client) post(ctx context.Context, path string, payload *Request, token string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(KindProtocol, err, "failed to encode request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, WrapError(KindNetwork, err, "failed to build request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-APP-Key", c.cfg.FabricAppID)
	if token != "" {
		httpReq.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Gateway request failed", zap.String("path", path), zap.Error(err))
		return nil, WrapError(KindNetwork, err, "no response from payment gateway")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(KindNetwork, err, "failed to read gateway response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Gateway returned error status",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode))
		return nil, Errorf(KindProvider, "gateway returned status %d: %s", resp.StatusCode, truncate(body, 256))
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
