package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// tokenLabel is the fixed payload keyed-hashed into the admin token.
// Changing it invalidates every cookie currently held by the admin browser.
const tokenLabel = "food-reviews-admin"

// ErrNotConfigured is returned when the shared admin password is unset.
var ErrNotConfigured = errors.New("admin password not configured")

// TokenService is the seam the HTTP layer depends on. A future multi-user
// setup could swap in per-session random tokens behind this interface
// without touching the gate or the handlers.
type TokenService interface {
	CreateToken() (string, error)
	VerifyToken(candidate string) bool
	VerifyPassword(candidate string) bool
}

// Service derives and verifies the single shared-secret admin credential.
// The token is deterministic: HMAC-SHA256 of tokenLabel keyed with the
// admin password, hex encoded. Expiry lives only in the cookie max-age.
type Service struct {
	secret []byte
}

// NewService binds the shared admin password. An empty password yields a
// service that fails closed on every operation.
func NewService(password string) *Service {
	var secret []byte
	if password != "" {
		secret = []byte(password)
	}
	return &Service{secret: secret}
}

// Configured reports whether a shared secret is present.
func (s *Service) Configured() bool {
	return len(s.secret) > 0
}

// CreateToken returns the hex-encoded admin token for the configured secret.
func (s *Service) CreateToken() (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	return hex.EncodeToString(s.expectedMAC()), nil
}

// VerifyToken recomputes the expected token and compares in constant time.
// Malformed candidates (non-hex, wrong length) are verification failures,
// never faults.
func (s *Service) VerifyToken(candidate string) bool {
	if !s.Configured() {
		return false
	}
	raw, err := hex.DecodeString(candidate)
	if err != nil {
		return false
	}
	expected := s.expectedMAC()
	if len(raw) != len(expected) {
		return false
	}
	return hmac.Equal(raw, expected)
}

// VerifyPassword checks the login password against the configured secret.
func (s *Service) VerifyPassword(candidate string) bool {
	if !s.Configured() {
		return false
	}
	return candidate == string(s.secret)
}

func (s *Service) expectedMAC() []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(tokenLabel))
	return mac.Sum(nil)
}
