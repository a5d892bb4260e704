/*-------------------------------------------------------------------------
 *
 * jwt.go
 *    Session token issuance and validation for the CodeScore server
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/auth/jwt.go
 *
 *-------------------------------------------------------------------------
 */

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

/* ErrInvalidToken is returned for malformed, expired, or mis-signed session tokens */
var ErrInvalidToken = errors.New("invalid session token")

/* SessionClaims are the JWT claims carried by a signed-in session */
type SessionClaims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

/* SessionManager issues and validates session tokens */
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

/* NewSessionManager creates a session manager with the given signing secret */
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

/* Issue creates a signed session token for an account */
func (m *SessionManager) Issue(accountID uuid.UUID, email string) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		AccountID: accountID.String(),
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Issuer:    "codescore",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

/* Validate parses a session token and returns its claims */
func (m *SessionManager) Validate(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
