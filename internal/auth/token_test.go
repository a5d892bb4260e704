/*-------------------------------------------------------------------------
 *
 * token_test.go
 *    Tests for token generation
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 *-------------------------------------------------------------------------
 */

package auth

import (
	"encoding/base64"
	"testing"
)

func TestNewApprovalToken(t *testing.T) {
	token, err := NewApprovalToken()
	if err != nil {
		t.Fatalf("NewApprovalToken() error = %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not URL-safe base64: %v", err)
	}
	if len(raw) != tokenBytes {
		t.Errorf("token has %d bytes of entropy, want %d", len(raw), tokenBytes)
	}
}

func TestNewApprovalTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := NewApprovalToken()
		if err != nil {
			t.Fatalf("NewApprovalToken() error = %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}
