package telebirr

import (
	"context"
	"fmt"
	"time"
)

// MockBaseURL is the host synthetic payment URLs point at.
const MockBaseURL = "https://mock-telebirr.com/pay"

// Ensure MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)

// MockProvider substitutes deterministic synthetic data for every
// network-dependent payment step. It performs no I/O; the configured
// delay preserves the caller's timing assumptions in development.
type MockProvider struct {
	delay time.Duration
	now   func() time.Time
}

// NewMockProvider creates a mock provider with the given artificial
// per-call delay.
func NewMockProvider(delay time.Duration) *MockProvider {
	return &MockProvider{delay: delay, now: time.Now}
}

func (m *MockProvider) IsMock() bool { return true }

func (m *MockProvider) ApplyFabricToken(ctx context.Context) (*TokenResult, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	return &TokenResult{
		Token:     fmt.Sprintf("MOCK_FABRIC_TOKEN_%d", m.now().UnixMilli()),
		ExpiresIn: 3600,
	}, nil
}

func (m *MockProvider) CreatePreOrder(ctx context.Context, token string, order PreOrder) (*PreOrderResult, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	ts := m.now().UnixMilli()
	return &PreOrderResult{
		PrepayID:        fmt.Sprintf("MOCK_PREPAY_ID_%d", ts),
		MerchantOrderID: fmt.Sprintf("MOCK_ORDER_%d", ts),
	}, nil
}

func (m *MockProvider) PaymentURL(prepayID string) (string, error) {
	return fmt.Sprintf("%s?prepay_id=%s&trade_type=%s", MockBaseURL, prepayID, tradeTypeCheckout), nil
}

func (m *MockProvider) sleep(ctx context.Context) error {
	if m.delay == 0 {
		return nil
	}
	select {
	case <-time.After(m.delay):
		return nil
	case <-ctx.Done():
		return WrapError(KindNetwork, ctx.Err(), "cancelled while simulating gateway latency")
	}
}
