/*-------------------------------------------------------------------------
 *
 * jwt_test.go
 *    Tests for session token issuance and validation
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 *-------------------------------------------------------------------------
 */

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)
	accountID := uuid.New()

	token, err := m.Issue(accountID, "user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.AccountID != accountID.String() {
		t.Errorf("AccountID = %s, want %s", claims.AccountID, accountID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %s, want user@example.com", claims.Email)
	}
}

func TestSessionValidateRejects(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)
	other := NewSessionManager("other-secret", time.Hour)
	expired := NewSessionManager("test-secret", -time.Hour)

	accountID := uuid.New()
	goodToken, _ := m.Issue(accountID, "user@example.com")
	foreignToken, _ := other.Issue(accountID, "user@example.com")

	/* Negative TTL falls back to the default, so force expiry directly */
	expired.ttl = -time.Hour
	expiredToken, _ := expired.Issue(accountID, "user@example.com")

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid token", goodToken, false},
		{"wrong secret", foreignToken, true},
		{"expired token", expiredToken, true},
		{"garbage", "not.a.jwt", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
