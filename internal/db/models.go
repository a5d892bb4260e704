/*-------------------------------------------------------------------------
 *
 * models.go
 *    Database models for the CodeScore server
 *
 * Defines Go structs that map to database tables for accounts,
 * approval requests, code reviews, and share links.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/db/models.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

/* Approval request status values */
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusDenied   = "denied"
)

/* ApprovalRequest represents a signup request awaiting an admin decision */
type ApprovalRequest struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Email         string         `db:"email" json:"email"`
	Reason        sql.NullString `db:"reason" json:"reason,omitempty"`
	Password      string         `db:"password" json:"-"`
	Status        string         `db:"status" json:"status"`
	ApprovalToken string         `db:"approval_token" json:"-"`
	DecidedBy     sql.NullString `db:"decided_by" json:"decided_by,omitempty"`
	DecidedAt     sql.NullTime   `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

/* Account represents a provisioned user account */
type Account struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	Email          string         `db:"email" json:"email"`
	PasswordHash   string         `db:"password_hash" json:"-"`
	EmailConfirmed bool           `db:"email_confirmed" json:"email_confirmed"`
	ApprovedBy     sql.NullString `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt     sql.NullTime   `db:"approved_at" json:"approved_at,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

/* ApprovedUser records an email that passed the approval pipeline */
type ApprovedUser struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	Email      string         `db:"email" json:"email"`
	ApprovedBy sql.NullString `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt time.Time      `db:"approved_at" json:"approved_at"`
}

/* CodeReview represents a stored review result */
type CodeReview struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	AccountID       uuid.UUID      `db:"account_id" json:"account_id"`
	CodeContent     string         `db:"code_content" json:"code_content"`
	ReviewResult    string         `db:"review_result" json:"review_result"`
	Language        sql.NullString `db:"language" json:"language,omitempty"`
	Filename        sql.NullString `db:"filename" json:"filename,omitempty"`
	TableStructures sql.NullString `db:"table_structures" json:"table_structures,omitempty"`
	DataVolume      sql.NullString `db:"data_volume" json:"data_volume,omitempty"`
	Score           sql.NullInt64  `db:"score" json:"score,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

/* ReviewShare maps a public share token to a review */
type ReviewShare struct {
	Token     string    `db:"token" json:"token"`
	ReviewID  uuid.UUID `db:"review_id" json:"review_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
