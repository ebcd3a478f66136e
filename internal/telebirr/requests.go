package telebirr

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	methodApplyToken = "payment.applytoken"
	methodPreOrder   = "payment.preorder"

	apiVersion          = "1.0"
	tradeTypeCheckout   = "Checkout"
	transCurrency       = "ETB"
	timeoutExpress      = "120m"
	businessTypeBuy     = "BuyGoods"
	payeeIdentifierType = "04"
	payeeType           = "5000"
)

const nonceChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newNonce returns a 32-character uppercase alphanumeric nonce. Nonces
// must be unique per call but need not be unpredictable; the signature
// covers the full request.
func newNonce() string {
	var b strings.Builder
	b.Grow(32)
	for i := 0; i < 32; i++ {
		b.WriteByte(nonceChars[rand.Intn(len(nonceChars))])
	}
	return b.String()
}

// newTimestamp returns the unix-seconds string the Fabric API expects.
func newTimestamp() string {
	return fmt.Sprintf("%d", time.Now().Unix())
}

// newMerchantOrderID derives a merchant order id from the wall clock.
// Millisecond granularity means two orders in the same tick collide; the
// provider contract pins this format, so the window is accepted rather
// than papered over.
func newMerchantOrderID() string {
	return fmt.Sprintf("%d", time.Now().UnixMilli())
}

// PreOrder carries the caller-supplied inputs of a pre-order request.
type PreOrder struct {
	Title  string
	Amount decimal.Decimal
}

// NewTokenRequest builds and signs a payment.applytoken request.
func NewTokenRequest(signer *Signer, appID string) (*Request, error) {
	if appID == "" {
		return nil, Errorf(KindConfiguration, "missing app id")
	}

	req := &Request{
		Fields: map[string]string{
			"timestamp": newTimestamp(),
			"nonce_str": newNonce(),
			"method":    methodApplyToken,
			"version":   apiVersion,
		},
		BizContent: map[string]string{
			"app_id": appID,
		},
	}
	if err := signer.SignRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// NewPreOrderRequest builds and signs a payment.preorder request and
// returns it together with the generated merchant order id.
func NewPreOrderRequest(signer *Signer, cfg Config, order PreOrder) (*Request, string, error) {
	merchOrderID := newMerchantOrderID()

	req := &Request{
		Fields: map[string]string{
			"timestamp": newTimestamp(),
			"nonce_str": newNonce(),
			"method":    methodPreOrder,
			"version":   apiVersion,
		},
		BizContent: map[string]string{
			"notify_url":            cfg.NotifyURL,
			"appid":                 cfg.MerchantAppID,
			"merch_code":            cfg.MerchantCode,
			"merch_order_id":        merchOrderID,
			"trade_type":            tradeTypeCheckout,
			"title":                 order.Title,
			"total_amount":          order.Amount.StringFixed(2),
			"trans_currency":        transCurrency,
			"timeout_express":       timeoutExpress,
			"business_type":         businessTypeBuy,
			"payee_identifier":      cfg.MerchantCode,
			"payee_identifier_type": payeeIdentifierType,
			"payee_type":            payeeType,
			"callback_info":         "Mobile payment for " + order.Title,
		},
	}
	if err := signer.SignRequest(req); err != nil {
		return nil, "", err
	}
	return req, merchOrderID, nil
}

// NewRedirectQuery builds the signed query string for the checkout
// redirect page. The signature is computed over the ascii-sorted field
// set like every other request, but the query itself is concatenated in
// the provider's fixed order (appid, merch_code, nonce_str, prepay_id,
// timestamp, sign, sign_type), which the checkout page requires verbatim.
func NewRedirectQuery(signer *Signer, merchantAppID, merchantCode, prepayID string) (string, error) {
	req := &Request{
		Fields: map[string]string{
			"appid":      merchantAppID,
			"merch_code": merchantCode,
			"nonce_str":  newNonce(),
			"prepay_id":  prepayID,
			"timestamp":  newTimestamp(),
		},
	}
	if err := signer.SignRequest(req); err != nil {
		return "", err
	}

	parts := []string{
		"appid=" + req.Fields["appid"],
		"merch_code=" + req.Fields["merch_code"],
		"nonce_str=" + req.Fields["nonce_str"],
		"prepay_id=" + req.Fields["prepay_id"],
		"timestamp=" + req.Fields["timestamp"],
		"sign=" + req.Sign,
		"sign_type=" + req.SignType,
	}
	return strings.Join(parts, "&"), nil
}
