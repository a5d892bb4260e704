/*-------------------------------------------------------------------------
 *
 * request_id.go
 *    Request ID tracking for the CodeScore server
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/api/request_id.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/arjunKumbakkara/codeScore/internal/metrics"
)

type requestIDKey struct{}

const requestIDHeader = "X-Request-ID"

/*
 * RequestIDMiddleware assigns each request an ID. An incoming
 * X-Request-ID is honored so upstream proxies can correlate logs.
 */
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		ctx = metrics.WithLogContext(ctx, requestID, "", "")

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

/* GetRequestID extracts the request ID from context */
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
