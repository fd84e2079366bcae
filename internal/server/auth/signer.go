package auth

import (
	"encoding/base64"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("session signing secret is empty")

// Signer derives the bearer credential from a raw session id:
// base64url(HMAC-SHA256(secret, sessionID)).
type Signer struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

// NewSigner refuses an empty secret, there is no built-in fallback key.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Signer{secret: []byte(secret), method: jwt.SigningMethodHS256}, nil
}

// Sign returns the signed form of sessionID. It is deterministic for a given
// secret.
func (s *Signer) Sign(sessionID string) (string, error) {
	sig, err := s.method.Sign(sessionID, s.secret)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify reports whether signed was produced by Sign for sessionID under
// this signer's secret. The comparison is constant time.
func (s *Signer) Verify(sessionID, signed string) bool {
	sig, err := base64.RawURLEncoding.DecodeString(signed)
	if err != nil {
		return false
	}
	return s.method.Verify(sessionID, sig, s.secret) == nil
}
