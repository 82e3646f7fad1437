package token

import (
	"errors"
	"fmt"
	"time"

	"tour-booking-api/internal/config"
	appErrors "tour-booking-api/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	UserID   uuid.UUID
	IssuedAt time.Time
}

// Manager issues and verifies stateless HS256 bearer tokens. Tokens are
// never stored server-side; validity is re-derived from the signature and
// the embedded timestamps.
type Manager struct {
	secret   []byte
	lifetime time.Duration
}

func NewManager(cfg config.JWTConfig) *Manager {
	return &Manager{
		secret:   []byte(cfg.Secret),
		lifetime: time.Duration(cfg.ExpiryHours) * time.Hour,
	}
}

// Lifetime is the validity window applied to issued tokens.
func (m *Manager) Lifetime() time.Duration {
	return m.lifetime
}

// Issue signs a token asserting userID, stamped with the current time.
func (m *Manager) Issue(userID uuid.UUID) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("jwt signing secret is not configured")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry of a presented token. It fails
// with ErrExpiredToken for tokens past their window and ErrInvalidToken for
// anything malformed or tampered with, so callers can answer distinctly.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.ErrExpiredToken
		}
		return nil, appErrors.ErrInvalidToken
	}

	registered, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, appErrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	if registered.IssuedAt == nil {
		return nil, appErrors.ErrInvalidToken
	}

	return &Claims{
		UserID:   userID,
		IssuedAt: registered.IssuedAt.Time,
	}, nil
}
