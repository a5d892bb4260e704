/*-------------------------------------------------------------------------
 *
 * handlers.go
 *    API handlers for the CodeScore server
 *
 * Provides HTTP handlers for sessions, reviews, share links, and
 * health checks.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/api/handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/arjunKumbakkara/codeScore/internal/auth"
	"github.com/arjunKumbakkara/codeScore/internal/db"
	"github.com/arjunKumbakkara/codeScore/internal/review"
)

/* Version is set at build time */
var Version = "dev"

type Handlers struct {
	queries  *db.Queries
	reviews  *review.Service
	sessions *auth.SessionManager
	database *db.DB
	baseURL  string
}

func NewHandlers(queries *db.Queries, reviews *review.Service, sessions *auth.SessionManager, database *db.DB, baseURL string) *Handlers {
	return &Handlers{
		queries:  queries,
		reviews:  reviews,
		sessions: sessions,
		database: database,
		baseURL:  baseURL,
	}
}

/* Sessions */

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "request body parsing error", err), requestID))
		return
	}

	account, err := h.queries.GetAccountByEmail(r.Context(), req.Email)
	if err != nil {
		/* Same response for unknown email and bad password */
		respondError(w, WrapError(NewError(http.StatusUnauthorized, "invalid email or password", nil), requestID))
		return
	}

	if !auth.VerifyPassword(req.Password, account.PasswordHash) {
		respondError(w, WrapError(NewError(http.StatusUnauthorized, "invalid email or password", nil), requestID))
		return
	}

	token, err := h.sessions.Issue(account.ID, account.Email)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to create session", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, SignInResponse{
		Token:     token,
		AccountID: account.ID,
		Email:     account.Email,
	})
}

/* Reviews */

func (h *Handlers) SubmitReview(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	accountID, ok := AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "request body parsing error", err), requestID))
		return
	}

	stored, err := h.reviews.Submit(r.Context(), accountID, review.Submission{
		Code:            req.Code,
		Language:        req.Language,
		Filename:        req.Filename,
		TableStructures: req.TableStructures,
		DataVolume:      req.DataVolume,
	})
	if err != nil {
		switch {
		case errors.Is(err, review.ErrValidation):
			respondError(w, WrapError(NewError(http.StatusBadRequest, err.Error(), nil), requestID))
		case errors.Is(err, review.ErrProviderTimeout):
			respondError(w, WrapError(NewError(http.StatusGatewayTimeout, "review provider timed out", err), requestID))
		case errors.Is(err, review.ErrProvider):
			respondError(w, WrapError(NewError(http.StatusBadGateway, "review provider error", err), requestID))
		default:
			respondError(w, WrapError(NewError(http.StatusInternalServerError, "review failed", err), requestID))
		}
		return
	}

	respondJSON(w, http.StatusCreated, toReviewResponse(stored))
}

func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	accountID, ok := AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	reviews, err := h.reviews.List(r.Context(), accountID, limit, offset)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list reviews", err), requestID))
		return
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, toReviewResponse(&reviews[i]))
	}
	respondJSON(w, http.StatusOK, responses)
}

func (h *Handlers) GetReview(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	accountID, ok := AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid review ID format", err), requestID))
		return
	}

	stored, err := h.reviews.Get(r.Context(), id, accountID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, WrapError(ErrNotFound, requestID))
			return
		}
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to get review", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, toReviewResponse(stored))
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	accountID, ok := AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid review ID format", err), requestID))
		return
	}

	if err := h.reviews.Delete(r.Context(), id, accountID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, WrapError(ErrNotFound, requestID))
			return
		}
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to delete review", err), requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ShareReview(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	accountID, ok := AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid review ID format", err), requestID))
		return
	}

	share, err := h.reviews.Share(r.Context(), id, accountID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, WrapError(ErrNotFound, requestID))
			return
		}
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to share review", err), requestID))
		return
	}

	respondJSON(w, http.StatusCreated, ShareResponse{
		Token:    share.Token,
		ReviewID: share.ReviewID,
		URL:      fmt.Sprintf("%s/shared/%s", h.baseURL, share.Token),
	})
}

/* GetSharedReview serves a shared review without authentication */
func (h *Handlers) GetSharedReview(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	token := mux.Vars(r)["token"]
	stored, err := h.reviews.GetShared(r.Context(), token)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, WrapError(ErrNotFound, requestID))
			return
		}
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to get shared review", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, toReviewResponse(stored))
}

/* Health */

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "ok", Version: Version}
	status := http.StatusOK
	if err := h.database.HealthCheck(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, resp)
}
