/*-------------------------------------------------------------------------
 *
 * token.go
 *    Random token generation for the CodeScore server
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/auth/token.go
 *
 *-------------------------------------------------------------------------
 */

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const tokenBytes = 32

/*
 * NewApprovalToken generates an unguessable single-use token for
 * approval decision links. 32 bytes of CSPRNG output, URL-safe
 * base64 without padding so it survives inclusion in a query string.
 */
func NewApprovalToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

/* NewShareToken generates a token for public review share links */
func NewShareToken() (string, error) {
	return NewApprovalToken()
}
