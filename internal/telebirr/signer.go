package telebirr

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// SignType is the only signature algorithm the Fabric API accepts.
const SignType = "SHA256WithRSA"

// excludedFields never participate in the canonical signing string.
var excludedFields = map[string]struct{}{
	"sign":        {},
	"sign_type":   {},
	"header":      {},
	"refund_info": {},
	"openType":    {},
	"raw_request": {},
}

// Request is a signable Fabric API request envelope. Top-level fields and
// the nested biz_content are both covered by the signature; the nested
// fields are promoted into the signing scope but stay nested on the wire.
type Request struct {
	Fields     map[string]string
	BizContent map[string]string
	Sign       string
	SignType   string
}

// MarshalJSON renders the wire shape: flat envelope fields, a nested
// biz_content object, and the sign/sign_type pair.
func (r *Request) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		out[k] = v
	}
	if len(r.BizContent) > 0 {
		out["biz_content"] = r.BizContent
	}
	if r.Sign != "" {
		out["sign"] = r.Sign
	}
	if r.SignType != "" {
		out["sign_type"] = r.SignType
	}
	return json.Marshal(out)
}

// CanonicalString builds the exact byte sequence that gets signed:
// biz_content merged over the top-level fields, the exclusion set and
// empty values dropped, remaining keys in ascending ASCII order, joined
// as key=value pairs with "&". The fixed field order used for redirect
// URLs is a separate concern and must not leak in here.
func (r *Request) CanonicalString() string {
	flat := make(map[string]string, len(r.Fields)+len(r.BizContent))
	for k, v := range r.Fields {
		flat[k] = v
	}
	for k, v := range r.BizContent {
		flat[k] = v
	}

	keys := make([]string, 0, len(flat))
	for k, v := range flat {
		if _, skip := excludedFields[k]; skip {
			continue
		}
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+flat[k])
	}
	return strings.Join(pairs, "&")
}

// Signer produces RSA-SHA256 signatures over canonical request strings.
// The zero key with mock signing disabled is a configuration error, not a
// silent fallback.
type Signer struct {
	key     *rsa.PrivateKey
	useMock bool
	now     func() time.Time
}

// NewSigner creates a signer. key may be nil only when useMock is true.
func NewSigner(key *rsa.PrivateKey, useMock bool) *Signer {
	return &Signer{key: key, useMock: useMock, now: time.Now}
}

// SignRequest computes the signature over req's canonical string and
// embeds it as the sign/sign_type pair. Each request is signed exactly
// once, after all other fields are final.
func (s *Signer) SignRequest(req *Request) error {
	sig, err := s.SignString(req.CanonicalString())
	if err != nil {
		return err
	}
	req.Sign = sig
	req.SignType = SignType
	return nil
}

// SignString signs an already-canonicalized string and returns the
// base64-encoded signature. With mock signing enabled the RSA step is
// bypassed entirely and a placeholder is returned; this is a designed
// escape hatch for environments without provisioned keys.
func (s *Signer) SignString(text string) (string, error) {
	if s.useMock {
		return fmt.Sprintf("MOCK_SIGNATURE_%d", s.now().UnixMilli()), nil
	}
	if s.key == nil {
		return "", Errorf(KindConfiguration, "no signing key configured and mock signing is disabled")
	}

	digest := sha256.Sum256([]byte(text))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, digest[:])
	if err != nil {
		return "", WrapError(KindSigning, err, "rsa signing failed")
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}
