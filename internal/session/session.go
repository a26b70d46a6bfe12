// Package session holds the signed-in user's identity. Tokens are compact
// HMAC-SHA256 signed claims; the rest of the application only asks whether a
// session is active and which user it belongs to.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	// ErrInvalidToken is returned for malformed or tampered tokens.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("session token expired")
	// ErrNoSession is returned by operations that need a signed-in user.
	ErrNoSession = errors.New("no active session")
)

const tokenTTL = 24 * time.Hour

// Session identifies the signed-in user. Claims beyond the user id and email
// are opaque to the rest of the application.
type Session struct {
	UserID string
	Email  string
}

type claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Exp    int64  `json:"exp"`
	Iat    int64  `json:"iat"`
}

// Manager mints and verifies session tokens and tracks the active session.
type Manager struct {
	secret []byte

	mu      sync.Mutex
	current *Session
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Mint issues a signed token for the given identity.
func (m *Manager) Mint(userID, email string) (string, error) {
	header := map[string]string{"alg": "HS256", "typ": "JWT"}

	c := claims{
		UserID: userID,
		Email:  email,
		Iat:    time.Now().Unix(),
		Exp:    time.Now().Add(tokenTTL).Unix(),
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}
	claimsJSON, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	message := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(claimsJSON)
	return message + "." + m.sign(message), nil
}

// Verify checks a token's signature and expiry and returns its identity.
func (m *Manager) Verify(token string) (*Session, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}

	message := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(m.sign(message))) {
		return nil, ErrInvalidToken
	}

	claimsJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidToken
	}
	var c claims
	if err := json.Unmarshal(claimsJSON, &c); err != nil {
		return nil, ErrInvalidToken
	}
	if time.Now().Unix() > c.Exp {
		return nil, ErrTokenExpired
	}

	return &Session{UserID: c.UserID, Email: c.Email}, nil
}

// SignIn verifies the token and records its identity as the active session.
// The active session lives only as long as the Manager: it serves long-lived
// embedders; one-shot callers re-verify the token on each run.
func (m *Manager) SignIn(token string) (*Session, error) {
	s, err := m.Verify(token)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, nil
}

// Current returns the active session, or ErrNoSession when nobody is signed in.
func (m *Manager) Current() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, ErrNoSession
	}
	s := *m.current
	return &s, nil
}

// SignOut discards the active session. Signing out twice is harmless.
func (m *Manager) SignOut() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

func (m *Manager) sign(message string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(message))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
