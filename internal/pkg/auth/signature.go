package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrInvalidSignature reports a webhook callback whose signature does not
// match the shared secret.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// WebhookVerifier authenticates payment gateway callbacks via HMAC-SHA256
// over the raw request body.
type WebhookVerifier struct {
	secret []byte
}

// NewWebhookVerifier builds a verifier with the shared gateway secret.
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: []byte(secret)}
}

// Sign computes the hex-encoded signature for a payload.
func (v *WebhookVerifier) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the payload against the provided signature in constant time.
func (v *WebhookVerifier) Verify(payload []byte, signature string) error {
	expected := v.Sign(payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
