// Package session implements the authenticated-session association and the
// one-time flash notice store. A session is a signed JWT carried in an
// HttpOnly cookie; its jti is kept in the store for as long as the session
// is valid, so logout can revoke a token before it expires.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spendwise/internal/config"
	"github.com/spendwise/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"
	flashTTL         = 10 * time.Minute
)

// Claims are the JWT claims carried by a session token
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Flash is a one-time notice shown on the next rendered page
type Flash struct {
	Message string `json:"message"`
	Level   string `json:"level"` // success, danger, info
}

// Manager issues, validates and revokes session tokens, and holds
// flash notices between a redirect and the following render.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	store      Store
}

// NewManager creates a new session Manager
func NewManager(cfg config.SessionConfig, store Store) *Manager {
	return &Manager{
		secret:     []byte(cfg.Secret),
		ttl:        time.Duration(cfg.ExpireHours) * time.Hour,
		cookieName: cfg.CookieName,
		store:      store,
	}
}

// CookieName returns the name of the session cookie
func (m *Manager) CookieName() string {
	return m.cookieName
}

// TTL returns the configured session lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a session for the user and returns the signed token.
// The token's jti is recorded in the store with the same lifetime.
func (m *Manager) Issue(ctx context.Context, user *models.User) (string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "spendwise",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	key := sessionKeyPrefix + jti
	if err := m.store.Put(ctx, key, fmt.Sprintf("%d", user.ID), m.ttl); err != nil {
		return "", err
	}

	return signed, nil
}

// Validate checks the token signature and expiry, then confirms the session
// has not been revoked. Returns the claims on success.
func (m *Manager) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if _, err := m.store.Get(ctx, sessionKeyPrefix+claims.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return claims, nil
}

// Revoke removes the token's session record so it can no longer validate
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	claims, err := m.parse(tokenString)
	if err != nil {
		// Nothing to revoke for a token we would reject anyway
		return nil
	}
	return m.store.Del(ctx, sessionKeyPrefix+claims.ID)
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// NewFlashKey returns a fresh key for a browser's flash queue. The key
// travels in its own cookie so notices survive across the login boundary.
func NewFlashKey() string {
	return uuid.NewString()
}

// AddFlash appends a notice to the flash queue for key
func (m *Manager) AddFlash(ctx context.Context, key string, flash Flash) error {
	flashes, err := m.peekFlashes(ctx, key)
	if err != nil {
		return err
	}
	flashes = append(flashes, flash)

	data, err := json.Marshal(flashes)
	if err != nil {
		return err
	}
	return m.store.Put(ctx, flashKeyPrefix+key, string(data), flashTTL)
}

// PopFlashes returns and clears the flash queue for key. A missing queue
// is an empty result, not an error.
func (m *Manager) PopFlashes(ctx context.Context, key string) ([]Flash, error) {
	flashes, err := m.peekFlashes(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(flashes) > 0 {
		if err := m.store.Del(ctx, flashKeyPrefix+key); err != nil {
			return nil, err
		}
	}
	return flashes, nil
}

func (m *Manager) peekFlashes(ctx context.Context, key string) ([]Flash, error) {
	raw, err := m.store.Get(ctx, flashKeyPrefix+key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var flashes []Flash
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		return nil, err
	}
	return flashes, nil
}
