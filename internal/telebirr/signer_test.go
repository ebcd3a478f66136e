package telebirr

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestCanonicalString_SortsKeysAscii(t *testing.T) {
	req := &Request{
		Fields: map[string]string{
			"timestamp": "123",
			"nonce_str": "ABC",
			"method":    "payment.preorder",
			"version":   "1.0",
		},
	}

	assert.Equal(t,
		"method=payment.preorder&nonce_str=ABC&timestamp=123&version=1.0",
		req.CanonicalString())
}

func TestCanonicalString_ExcludesReservedAndEmpty(t *testing.T) {
	req := &Request{
		Fields: map[string]string{
			"appid":       "A1",
			"sign":        "should-not-appear",
			"sign_type":   "SHA256WithRSA",
			"header":      "h",
			"refund_info": "r",
			"openType":    "o",
			"raw_request": "raw",
			"empty":       "",
		},
	}

	assert.Equal(t, "appid=A1", req.CanonicalString())
}

func TestCanonicalString_BizContentWinsOverTopLevel(t *testing.T) {
	req := &Request{
		Fields: map[string]string{
			"appid": "outer",
			"other": "x",
		},
		BizContent: map[string]string{
			"appid": "inner",
		},
	}

	assert.Equal(t, "appid=inner&other=x", req.CanonicalString())
}

func TestSignRequest_VerifiableAndDeterministic(t *testing.T) {
	key := testKey(t)
	signer := NewSigner(key, false)

	req := &Request{
		Fields: map[string]string{
			"timestamp": "1700000000",
			"nonce_str": "NONCE",
			"method":    "payment.applytoken",
			"version":   "1.0",
		},
		BizContent: map[string]string{"app_id": "APP"},
	}

	require.NoError(t, signer.SignRequest(req))
	assert.Equal(t, SignType, req.SignType)

	sig, err := base64.StdEncoding.DecodeString(req.Sign)
	require.NoError(t, err)

	digest := sha256.Sum256([]byte(req.CanonicalString()))
	require.NoError(t, rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], sig))

	// PKCS#1 v1.5 signatures are deterministic for identical input.
	again, err := signer.SignString(req.CanonicalString())
	require.NoError(t, err)
	assert.Equal(t, req.Sign, again)
}

func TestSignString_MockSignature(t *testing.T) {
	signer := NewSigner(nil, true)

	sig, err := signer.SignString("anything")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sig, "MOCK_SIGNATURE_"), "got %q", sig)
}

func TestSignString_NilKeyWithoutMockFails(t *testing.T) {
	signer := NewSigner(nil, false)

	_, err := signer.SignString("anything")
	require.Error(t, err)
	assert.Equal(t, KindConfiguration, KindOf(err))
}

func TestRequest_MarshalJSON(t *testing.T) {
	key := testKey(t)
	signer := NewSigner(key, false)

	req := &Request{
		Fields: map[string]string{
			"timestamp": "1700000000",
			"nonce_str": "NONCE",
			"method":    "payment.preorder",
			"version":   "1.0",
		},
		BizContent: map[string]string{"merch_order_id": "42"},
	}
	require.NoError(t, signer.SignRequest(req))

	data, err := json.Marshal(req)
	require.NoError(t, err)

	// sign_type appears exactly once, at the top level.
	assert.Equal(t, 1, strings.Count(string(data), `"sign_type"`))

	var decoded struct {
		Method     string            `json:"method"`
		BizContent map[string]string `json:"biz_content"`
		Sign       string            `json:"sign"`
		SignType   string            `json:"sign_type"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "payment.preorder", decoded.Method)
	assert.Equal(t, "42", decoded.BizContent["merch_order_id"])
	assert.Equal(t, req.Sign, decoded.Sign)
	assert.Equal(t, SignType, decoded.SignType)
}
