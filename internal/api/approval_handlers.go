/*-------------------------------------------------------------------------
 *
 * approval_handlers.go
 *    Approval pipeline handlers for the CodeScore server
 *
 * Handles access request intake, the emailed decision links, and the
 * admin pending queue.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/api/approval_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/arjunKumbakkara/codeScore/internal/approval"
)

type ApprovalHandlers struct {
	manager *approval.Manager
}

func NewApprovalHandlers(manager *approval.Manager) *ApprovalHandlers {
	return &ApprovalHandlers{manager: manager}
}

/*
 * RequestAccess accepts a new signup request. Returns 202: the request
 * is queued for a human decision, nothing is provisioned yet.
 */
func (h *ApprovalHandlers) RequestAccess(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req RequestAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "request body parsing error", err), requestID))
		return
	}

	created, err := h.manager.Intake(r.Context(), req.Email, req.Reason, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, approval.ErrValidation):
			respondError(w, WrapError(NewError(http.StatusBadRequest, err.Error(), nil), requestID))
		case errors.Is(err, approval.ErrDuplicateRequest):
			respondError(w, WrapError(NewError(http.StatusConflict, err.Error(), nil), requestID))
		default:
			respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to record access request", err), requestID))
		}
		return
	}

	respondJSON(w, http.StatusAccepted, RequestAccessResponse{
		Success: true,
		ID:      created.ID,
		Email:   created.Email,
		Status:  created.Status,
		Message: "Your request has been submitted. You will receive an email once it is reviewed.",
	})
}

/*
 * Decide executes an emailed decision link. Admins click these from a
 * mail client, so the default response is a small HTML page; clients
 * that ask for JSON get JSON.
 */
func (h *ApprovalHandlers) Decide(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	token := r.URL.Query().Get("token")
	action := r.URL.Query().Get("action")
	wantsJSON := strings.Contains(r.Header.Get("Accept"), "application/json")

	if token == "" || action == "" {
		h.respondDecision(w, wantsJSON, http.StatusBadRequest, "Invalid request",
			"Missing token or action parameter.", requestID)
		return
	}

	result, err := h.manager.Decide(r.Context(), token, action, "")
	if err != nil {
		switch {
		case errors.Is(err, approval.ErrValidation):
			h.respondDecision(w, wantsJSON, http.StatusBadRequest, "Invalid request", err.Error(), requestID)
		case errors.Is(err, approval.ErrInvalidOrExpiredToken):
			h.respondDecision(w, wantsJSON, http.StatusNotFound, "Link expired",
				"This approval link is invalid or was already used.", requestID)
		case errors.Is(err, approval.ErrAccountExists):
			h.respondDecision(w, wantsJSON, http.StatusConflict, "Account exists",
				"An account already exists for this email. The request remains pending.", requestID)
		default:
			h.respondDecision(w, wantsJSON, http.StatusInternalServerError, "Something went wrong",
				"The decision could not be processed. The link is still valid, try again shortly.", requestID)
		}
		return
	}

	title := "Request denied"
	if result.Status == "approved" {
		title = "Request approved"
	}
	if wantsJSON {
		respondJSON(w, http.StatusOK, result)
		return
	}
	h.writeDecisionPage(w, http.StatusOK, title, result.Message)
}

func (h *ApprovalHandlers) respondDecision(w http.ResponseWriter, wantsJSON bool, status int, title, message, requestID string) {
	if wantsJSON {
		respondError(w, WrapError(NewError(status, message, nil), requestID))
		return
	}
	h.writeDecisionPage(w, status, title, message)
}

func (h *ApprovalHandlers) writeDecisionPage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="font-family:sans-serif;max-width:480px;margin:80px auto;text-align:center;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), html.EscapeString(message))
}

/* ListPending returns the admin queue of undecided requests */
func (h *ApprovalHandlers) ListPending(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	pending, err := h.manager.ListPending(r.Context())
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list pending requests", err), requestID))
		return
	}

	responses := make([]PendingApprovalResponse, 0, len(pending))
	for i := range pending {
		responses = append(responses, toPendingApprovalResponse(&pending[i]))
	}
	respondJSON(w, http.StatusOK, responses)
}
