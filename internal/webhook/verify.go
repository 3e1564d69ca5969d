package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body,
// keyed by the merchant security key.
const SignatureHeader = "X-Pagsmile-Signature"

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Verifier authenticates inbound notifications before any field is
// trusted. An empty secret skips verification (sandbox development).
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) Verify(body []byte, signature string) error {
	if v.secret == "" {
		return nil // skip in dev
	}

	sig, err := hex.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(body)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign computes the signature for a body. Used by tests and by tools
// that replay notifications.
func (v *Verifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
