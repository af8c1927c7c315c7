// Package token verifies the HMAC-SHA256 signed bearer tokens that identify
// API callers. The server never mints tokens over HTTP; Sign exists for tests
// and local tooling.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that cannot be mapped to an
// Identity: bad signature, malformed payload, or missing username claim.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the sole claim trusted from a verified token.
type Identity struct {
	Username string `json:"username"`
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager verifies tokens against a process-wide secret. The secret is
// injected once at construction and never mutated afterwards.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager for the given signing secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Verify checks the token signature and decodes the embedded Identity.
// Every failure mode collapses into ErrInvalidToken so callers treat the
// request as unauthenticated rather than branching on parse internals.
func (m *Manager) Verify(tokenString string) (*Identity, error) {
	c := &claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if c.Username == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{Username: c.Username}, nil
}

// Sign produces a token encoding the given identity. Used by tests and the
// token CLI; no HTTP endpoint exposes it.
func (m *Manager) Sign(identity Identity) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{Username: identity.Username})
	return t.SignedString(m.secret)
}
