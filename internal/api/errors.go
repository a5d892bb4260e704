/*-------------------------------------------------------------------------
 *
 * errors.go
 *    API error types and response helpers for the CodeScore server
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/api/errors.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/arjunKumbakkara/codeScore/internal/metrics"
)

/* APIError carries an HTTP status with a client-safe message */
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
	Err        error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

/* Common errors */
var (
	ErrNotFound        = &APIError{StatusCode: http.StatusNotFound, Message: "resource not found"}
	ErrUnauthorized    = &APIError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
	ErrSessionRequired = &APIError{StatusCode: http.StatusUnauthorized, Message: "sign in required; new users can request access via POST /api/v1/approvals/request"}
	ErrForbidden       = &APIError{StatusCode: http.StatusForbidden, Message: "forbidden"}
)

/* NewError creates an API error wrapping an underlying cause */
func NewError(statusCode int, message string, err error) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

/* WrapError attaches a request ID to an error for the response body */
func WrapError(e *APIError, requestID string) *APIError {
	return &APIError{
		StatusCode: e.StatusCode,
		Message:    e.Message,
		RequestID:  requestID,
		Err:        e.Err,
	}
}

/* ErrorResponse is the JSON error envelope */
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			metrics.ErrorWithContext(context.Background(), "Failed to encode response", err, nil)
		}
	}
}

/*
 * respondError writes the JSON error envelope. The underlying cause is
 * logged but never serialized, so internal details stay out of client
 * responses.
 */
func respondError(w http.ResponseWriter, apiErr *APIError) {
	if apiErr.StatusCode >= http.StatusInternalServerError {
		metrics.ErrorWithContext(context.Background(), apiErr.Message, apiErr.Err, map[string]interface{}{
			"request_id": apiErr.RequestID,
			"status":     apiErr.StatusCode,
		})
	}
	respondJSON(w, apiErr.StatusCode, ErrorResponse{Error: *apiErr})
}
