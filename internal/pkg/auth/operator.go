package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidOperatorToken reports a rejected operator credential.
var ErrInvalidOperatorToken = errors.New("invalid operator token")

// OperatorAuth guards operator endpoints. Only the bcrypt hash of the token
// is configured; the plaintext never leaves the operator's environment.
type OperatorAuth struct {
	tokenHash string
}

// NewOperatorAuth builds the check from a bcrypt hash. An empty hash
// disables operator access entirely.
func NewOperatorAuth(tokenHash string) *OperatorAuth {
	return &OperatorAuth{tokenHash: tokenHash}
}

// Check compares a presented token against the configured hash.
func (a *OperatorAuth) Check(token string) error {
	if a.tokenHash == "" || token == "" {
		return ErrInvalidOperatorToken
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.tokenHash), []byte(token)); err != nil {
		return ErrInvalidOperatorToken
	}
	return nil
}

// HashToken produces a bcrypt hash suitable for OPERATOR_TOKEN_HASH.
func HashToken(token string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
