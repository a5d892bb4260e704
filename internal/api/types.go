/*-------------------------------------------------------------------------
 *
 * types.go
 *    API request and response types for the CodeScore server
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/api/types.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/arjunKumbakkara/codeScore/internal/db"
)

/* Approval pipeline */

type RequestAccessRequest struct {
	Email    string `json:"email"`
	Reason   string `json:"reason"`
	Password string `json:"password"`
}

type RequestAccessResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
}

type PendingApprovalResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

/* Sessions */

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token     string    `json:"token"`
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
}

/* Reviews */

type SubmitReviewRequest struct {
	Code            string `json:"code"`
	Language        string `json:"language,omitempty"`
	Filename        string `json:"filename,omitempty"`
	TableStructures string `json:"table_structures,omitempty"`
	DataVolume      string `json:"data_volume,omitempty"`
}

type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	CodeContent  string    `json:"code_content"`
	ReviewResult string    `json:"review_result"`
	Language     string    `json:"language,omitempty"`
	Filename     string    `json:"filename,omitempty"`
	Score        int       `json:"score,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ShareResponse struct {
	Token    string    `json:"token"`
	ReviewID uuid.UUID `json:"review_id"`
	URL      string    `json:"url"`
}

/* Admin */

type SweepResponse struct {
	ReviewsDeleted int64 `json:"reviews_deleted"`
}

/* Health */

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}

func toPendingApprovalResponse(req *db.ApprovalRequest) PendingApprovalResponse {
	resp := PendingApprovalResponse{
		ID:        req.ID,
		Email:     req.Email,
		CreatedAt: req.CreatedAt,
	}
	if req.Reason.Valid {
		resp.Reason = req.Reason.String
	}
	return resp
}

func toReviewResponse(review *db.CodeReview) ReviewResponse {
	resp := ReviewResponse{
		ID:           review.ID,
		CodeContent:  review.CodeContent,
		ReviewResult: review.ReviewResult,
		CreatedAt:    review.CreatedAt,
	}
	if review.Language.Valid {
		resp.Language = review.Language.String
	}
	if review.Filename.Valid {
		resp.Filename = review.Filename.String
	}
	if review.Score.Valid {
		resp.Score = int(review.Score.Int64)
	}
	return resp
}
