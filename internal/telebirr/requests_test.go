package telebirr

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		BaseURL:       "https://gateway.example.com/apiaccess/payment/gateway",
		WebBaseURL:    "https://gateway.example.com/payment/web/paygate",
		AppID:         "fabric-app",
		FabricAppID:   "fabric-key",
		MerchantAppID: "merchant-app",
		MerchantCode:  "MC001",
		NotifyURL:     "https://shop.example.com/api/v1/telebirr/webhook",
	}
}

func TestNewNonce(t *testing.T) {
	a, b := newNonce(), newNonce()

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	for _, r := range a {
		assert.Contains(t, nonceChars, string(r))
	}
}

func TestNewMerchantOrderID_IsMillisTimestamp(t *testing.T) {
	id := newMerchantOrderID()

	ms, err := strconv.ParseInt(id, 10, 64)
	require.NoError(t, err)
	assert.Greater(t, ms, int64(1_600_000_000_000))
}

func TestNewTokenRequest(t *testing.T) {
	signer := NewSigner(testKey(t), false)

	req, err := NewTokenRequest(signer, "fabric-app")
	require.NoError(t, err)

	assert.Equal(t, "payment.applytoken", req.Fields["method"])
	assert.Equal(t, "1.0", req.Fields["version"])
	assert.NotEmpty(t, req.Fields["timestamp"])
	assert.Len(t, req.Fields["nonce_str"], 32)
	assert.Equal(t, "fabric-app", req.BizContent["app_id"])
	assert.NotEmpty(t, req.Sign)
	assert.Equal(t, SignType, req.SignType)
}

func TestNewTokenRequest_MissingAppID(t *testing.T) {
	signer := NewSigner(testKey(t), false)

	_, err := NewTokenRequest(signer, "")
	require.Error(t, err)
	assert.Equal(t, KindConfiguration, KindOf(err))
}

func TestNewPreOrderRequest(t *testing.T) {
	signer := NewSigner(testKey(t), false)
	cfg := testConfig()

	req, merchOrderID, err := NewPreOrderRequest(signer, cfg, PreOrder{
		Title:  "Two Coffees",
		Amount: decimal.NewFromFloat(10.5),
	})
	require.NoError(t, err)
	require.NotEmpty(t, merchOrderID)

	assert.Equal(t, "payment.preorder", req.Fields["method"])

	biz := req.BizContent
	assert.Equal(t, cfg.NotifyURL, biz["notify_url"])
	assert.Equal(t, cfg.MerchantAppID, biz["appid"])
	assert.Equal(t, cfg.MerchantCode, biz["merch_code"])
	assert.Equal(t, merchOrderID, biz["merch_order_id"])
	assert.Equal(t, "Checkout", biz["trade_type"])
	assert.Equal(t, "Two Coffees", biz["title"])
	assert.Equal(t, "10.50", biz["total_amount"])
	assert.Equal(t, "ETB", biz["trans_currency"])
	assert.Equal(t, "120m", biz["timeout_express"])
	assert.Equal(t, "BuyGoods", biz["business_type"])
	assert.Equal(t, cfg.MerchantCode, biz["payee_identifier"])
	assert.Equal(t, "04", biz["payee_identifier_type"])
	assert.Equal(t, "5000", biz["payee_type"])
	assert.Equal(t, "Mobile payment for Two Coffees", biz["callback_info"])

	assert.NotEmpty(t, req.Sign)
}

func TestNewRedirectQuery_FixedFieldOrder(t *testing.T) {
	signer := NewSigner(testKey(t), false)

	query, err := NewRedirectQuery(signer, "merchant-app", "MC001", "PREPAY-77")
	require.NoError(t, err)

	parts := strings.Split(query, "&")
	require.Len(t, parts, 7)

	wantOrder := []string{"appid=", "merch_code=", "nonce_str=", "prepay_id=", "timestamp=", "sign=", "sign_type="}
	for i, prefix := range wantOrder {
		assert.True(t, strings.HasPrefix(parts[i], prefix),
			"field %d: want prefix %q, got %q", i, prefix, parts[i])
	}

	assert.Equal(t, "appid=merchant-app", parts[0])
	assert.Equal(t, "merch_code=MC001", parts[1])
	assert.Equal(t, "prepay_id=PREPAY-77", parts[3])
	assert.Equal(t, "sign_type="+SignType, parts[6])
}
