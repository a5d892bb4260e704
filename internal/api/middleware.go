/*-------------------------------------------------------------------------
 *
 * middleware.go
 *    HTTP middleware for the CodeScore server
 *
 * Provides session authentication, admin key checks, CORS, and
 * request logging middleware.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/api/middleware.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjunKumbakkara/codeScore/internal/auth"
	"github.com/arjunKumbakkara/codeScore/internal/metrics"
)

type sessionKey struct{}

/* SessionAuthMiddleware validates the bearer session token */
type SessionAuthMiddleware struct {
	sessions *auth.SessionManager
}

func NewSessionAuthMiddleware(sessions *auth.SessionManager) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{sessions: sessions}
}

/* Middleware returns the session auth middleware handler */
func (m *SessionAuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, WrapError(ErrSessionRequired, requestID))
			return
		}

		claims, err := m.sessions.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondError(w, WrapError(ErrSessionRequired, requestID))
			return
		}

		accountID, err := uuid.Parse(claims.AccountID)
		if err != nil {
			respondError(w, WrapError(ErrSessionRequired, requestID))
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, claims)
		ctx = metrics.WithLogContext(ctx, requestID, accountID.String(), "")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

/* SessionFromContext returns the validated session claims, if any */
func SessionFromContext(ctx context.Context) (*auth.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionKey{}).(*auth.SessionClaims)
	return claims, ok
}

/* AccountIDFromContext returns the signed-in account ID */
func AccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := SessionFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

/* AdminAuthMiddleware gates admin endpoints on a shared API key */
type AdminAuthMiddleware struct {
	apiKey string
}

func NewAdminAuthMiddleware(apiKey string) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{apiKey: apiKey}
}

/* Middleware returns the admin auth middleware handler */
func (m *AdminAuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())

		if m.apiKey == "" {
			respondError(w, WrapError(ErrForbidden, requestID))
			return
		}

		key := r.Header.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			respondError(w, WrapError(ErrUnauthorized, requestID))
			return
		}

		next.ServeHTTP(w, r)
	})
}

/* CORSMiddleware adds CORS headers */
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Key, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

/* responseWriter wraps http.ResponseWriter to capture the status code */
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

/* LoggingMiddleware logs requests and records HTTP metrics */
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, r.URL.Path, wrapped.statusCode, duration)
		metrics.InfoWithContext(r.Context(), "HTTP request", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapped.statusCode,
			"duration": duration.String(),
			"remote":   r.RemoteAddr,
		})
	})
}
