/*-------------------------------------------------------------------------
 *
 * approval_queries.go
 *    Approval pipeline queries for the CodeScore server
 *
 * Implements the signup approval workflow: intake of pending
 * requests and atomic, single-winner decision transitions.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/db/approval_queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

/* ErrNoPendingApproval is returned when a decision token matches no pending request */
var ErrNoPendingApproval = errors.New("no pending approval for token")

/* ErrDuplicatePending is returned when an email already has a pending request */
var ErrDuplicatePending = errors.New("pending approval already exists for email")

const createApprovalQuery = `
	INSERT INTO user_approvals (id, email, reason, password, status, approval_token, created_at, updated_at)
	VALUES ($1, $2, $3, $4, 'pending', $5, NOW(), NOW())
	RETURNING id, email, reason, password, status, approval_token, decided_by, decided_at, created_at, updated_at`

const getApprovalByTokenQuery = `
	SELECT id, email, reason, password, status, approval_token, decided_by, decided_at, created_at, updated_at
	FROM user_approvals WHERE approval_token = $1`

const lockPendingApprovalQuery = `
	SELECT id, email, reason, password, status, approval_token, decided_by, decided_at, created_at, updated_at
	FROM user_approvals
	WHERE approval_token = $1 AND status = 'pending'
	FOR UPDATE`

const decideApprovalQuery = `
	UPDATE user_approvals
	SET status = $2, password = '', decided_by = $3, decided_at = NOW(), updated_at = NOW()
	WHERE id = $1 AND status = 'pending'`

const insertApprovedUserQuery = `
	INSERT INTO approved_users (id, email, approved_by, approved_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (email) DO NOTHING`

const listPendingApprovalsQuery = `
	SELECT id, email, reason, password, status, approval_token, decided_by, decided_at, created_at, updated_at
	FROM user_approvals
	WHERE status = 'pending'
	ORDER BY created_at ASC`

/* CreateApprovalRequest records a new pending signup request */
func (q *Queries) CreateApprovalRequest(ctx context.Context, email, reason, password, token string) (*ApprovalRequest, error) {
	var req ApprovalRequest
	err := q.ext.GetContext(ctx, &req, createApprovalQuery,
		uuid.New(), email,
		sql.NullString{String: reason, Valid: reason != ""},
		password, token)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("approval for %s: %w", email, ErrDuplicatePending)
		}
		return nil, formatQueryError("create", "approval request", err, map[string]interface{}{
			"email": email,
		})
	}
	return &req, nil
}

/* GetApprovalByToken retrieves an approval request by its decision token */
func (q *Queries) GetApprovalByToken(ctx context.Context, token string) (*ApprovalRequest, error) {
	var req ApprovalRequest
	err := q.ext.GetContext(ctx, &req, getApprovalByTokenQuery, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("approval token: %w", ErrNotFound)
		}
		return nil, formatQueryError("get", "approval request", err, nil)
	}
	return &req, nil
}

/* ListPendingApprovals returns all requests awaiting a decision, oldest first */
func (q *Queries) ListPendingApprovals(ctx context.Context) ([]ApprovalRequest, error) {
	reqs := []ApprovalRequest{}
	err := q.ext.SelectContext(ctx, &reqs, listPendingApprovalsQuery)
	if err != nil {
		return nil, formatQueryError("list", "pending approvals", err, nil)
	}
	return reqs, nil
}

/*
 * DecideApproval atomically transitions a pending request to the given
 * status. The row is locked for the duration of the transaction so that
 * concurrent decisions on the same token serialize: the first wins, the
 * rest find no pending row and get ErrNoPendingApproval.
 *
 * For approvals, provision runs on the same transaction before the
 * status flip, so the account insert and the decision commit or roll
 * back together. If provisioning fails the request stays pending and
 * the decision link remains usable for a retry. The stored plaintext
 * password is wiped by the same UPDATE that flips the status.
 */
func (q *Queries) DecideApproval(ctx context.Context, token, status, decidedBy string,
	provision func(ctx context.Context, accounts AccountCreator, email, password string) error) (*ApprovalRequest, error) {

	tx, err := q.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin decision transaction: %w", err)
	}
	defer tx.Rollback()

	var req ApprovalRequest
	err = tx.GetContext(ctx, &req, lockPendingApprovalQuery, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoPendingApproval
		}
		return nil, formatQueryError("lock", "approval request", err, nil)
	}

	if provision != nil {
		if err := provision(ctx, q.withTx(tx), req.Email, req.Password); err != nil {
			return nil, err
		}
	}

	result, err := tx.ExecContext(ctx, decideApprovalQuery, req.ID, status, decidedBy)
	if err != nil {
		return nil, formatQueryError("decide", "approval request", err, map[string]interface{}{
			"approval_id": req.ID,
			"status":      status,
		})
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNoPendingApproval
	}

	if status == ApprovalStatusApproved {
		if _, err := tx.ExecContext(ctx, insertApprovedUserQuery, uuid.New(), req.Email,
			sql.NullString{String: decidedBy, Valid: decidedBy != ""}); err != nil {
			return nil, formatQueryError("record", "approved user", err, map[string]interface{}{
				"email": req.Email,
			})
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit decision transaction: %w", err)
	}

	req.Status = status
	req.Password = ""
	req.DecidedBy = sql.NullString{String: decidedBy, Valid: decidedBy != ""}
	req.DecidedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	return &req, nil
}
