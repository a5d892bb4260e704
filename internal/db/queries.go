/*-------------------------------------------------------------------------
 *
 * queries.go
 *    Database queries for the CodeScore server
 *
 * Provides query functions for accounts, code reviews, and share
 * links with proper error handling and context support.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/db/queries.go
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
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

/* ErrNotFound is returned when a requested row does not exist */
var ErrNotFound = errors.New("not found")

/* ErrDuplicate is returned when a unique constraint is violated */
var ErrDuplicate = errors.New("duplicate")

/* sqlxExt is the query surface shared by the pool and a transaction */
type sqlxExt interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

/* AccountCreator is the account insert surface handed to provisioning callbacks */
type AccountCreator interface {
	CreateAccount(ctx context.Context, email, passwordHash, approvedBy string) (*Account, error)
}

/* Queries provides database query methods */
type Queries struct {
	db  *DB
	ext sqlxExt
}

/* NewQueries creates a new queries instance */
func NewQueries(db *DB) *Queries {
	return &Queries{db: db, ext: db}
}

/* withTx returns a Queries view that runs on the given transaction */
func (q *Queries) withTx(tx *sqlx.Tx) *Queries {
	return &Queries{db: q.db, ext: tx}
}

/* formatQueryError creates a detailed error message for query failures */
func formatQueryError(operation, entity string, err error, context map[string]interface{}) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf("failed to %s %s", operation, entity)
	if len(context) > 0 {
		msg += " ("
		first := true
		for k, v := range context {
			if !first {
				msg += ", "
			}
			msg += fmt.Sprintf("%s=%v", k, v)
			first = false
		}
		msg += ")"
	}
	return fmt.Errorf("%s: %w", msg, err)
}

/* isUniqueViolation reports whether err is a PostgreSQL unique_violation */
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

/* Account queries */

const createAccountQuery = `
	INSERT INTO accounts (id, email, password_hash, email_confirmed, approved_by, approved_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING id, email, password_hash, email_confirmed, approved_by, approved_at, created_at, updated_at`

const getAccountByEmailQuery = `
	SELECT id, email, password_hash, email_confirmed, approved_by, approved_at, created_at, updated_at
	FROM accounts WHERE email = $1`

const getAccountByIDQuery = `
	SELECT id, email, password_hash, email_confirmed, approved_by, approved_at, created_at, updated_at
	FROM accounts WHERE id = $1`

/* CreateAccount inserts a new account row */
func (q *Queries) CreateAccount(ctx context.Context, email, passwordHash string, approvedBy string) (*Account, error) {
	var account Account
	err := q.ext.GetContext(ctx, &account, createAccountQuery,
		uuid.New(), email, passwordHash, true,
		sql.NullString{String: approvedBy, Valid: approvedBy != ""},
		sql.NullTime{Time: time.Now().UTC(), Valid: true})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("account for %s: %w", email, ErrDuplicate)
		}
		return nil, formatQueryError("create", "account", err, map[string]interface{}{
			"email": email,
		})
	}
	return &account, nil
}

/* GetAccountByEmail retrieves an account by email address */
func (q *Queries) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := q.ext.GetContext(ctx, &account, getAccountByEmailQuery, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account for %s: %w", email, ErrNotFound)
		}
		return nil, formatQueryError("get", "account", err, map[string]interface{}{
			"email": email,
		})
	}
	return &account, nil
}

/* GetAccountByID retrieves an account by ID */
func (q *Queries) GetAccountByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	var account Account
	err := q.ext.GetContext(ctx, &account, getAccountByIDQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
		}
		return nil, formatQueryError("get", "account", err, map[string]interface{}{
			"account_id": id,
		})
	}
	return &account, nil
}

/* Code review queries */

const createReviewQuery = `
	INSERT INTO code_reviews (id, account_id, code_content, review_result, language, filename, table_structures, data_volume, score, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	RETURNING id, account_id, code_content, review_result, language, filename, table_structures, data_volume, score, created_at`

const listReviewsQuery = `
	SELECT id, account_id, code_content, review_result, language, filename, table_structures, data_volume, score, created_at
	FROM code_reviews
	WHERE account_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

const getReviewQuery = `
	SELECT id, account_id, code_content, review_result, language, filename, table_structures, data_volume, score, created_at
	FROM code_reviews
	WHERE id = $1 AND account_id = $2`

const deleteReviewQuery = `
	DELETE FROM code_reviews WHERE id = $1 AND account_id = $2`

const deleteExpiredReviewsQuery = `
	DELETE FROM code_reviews WHERE created_at < $1`

/* CreateReview stores a completed review */
func (q *Queries) CreateReview(ctx context.Context, review *CodeReview) (*CodeReview, error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	var stored CodeReview
	err := q.ext.GetContext(ctx, &stored, createReviewQuery,
		review.ID, review.AccountID, review.CodeContent, review.ReviewResult,
		review.Language, review.Filename, review.TableStructures, review.DataVolume, review.Score)
	if err != nil {
		return nil, formatQueryError("create", "review", err, map[string]interface{}{
			"account_id": review.AccountID,
		})
	}
	return &stored, nil
}

/* ListReviews returns an account's reviews, newest first */
func (q *Queries) ListReviews(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]CodeReview, error) {
	reviews := []CodeReview{}
	err := q.ext.SelectContext(ctx, &reviews, listReviewsQuery, accountID, limit, offset)
	if err != nil {
		return nil, formatQueryError("list", "reviews", err, map[string]interface{}{
			"account_id": accountID,
		})
	}
	return reviews, nil
}

/* GetReview retrieves a single review owned by the account */
func (q *Queries) GetReview(ctx context.Context, id, accountID uuid.UUID) (*CodeReview, error) {
	var review CodeReview
	err := q.ext.GetContext(ctx, &review, getReviewQuery, id, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
		}
		return nil, formatQueryError("get", "review", err, map[string]interface{}{
			"review_id": id,
		})
	}
	return &review, nil
}

/* DeleteReview removes a review owned by the account */
func (q *Queries) DeleteReview(ctx context.Context, id, accountID uuid.UUID) error {
	result, err := q.ext.ExecContext(ctx, deleteReviewQuery, id, accountID)
	if err != nil {
		return formatQueryError("delete", "review", err, map[string]interface{}{
			"review_id": id,
		})
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return nil
}

/* DeleteExpiredReviews removes reviews created before the cutoff */
func (q *Queries) DeleteExpiredReviews(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := q.ext.ExecContext(ctx, deleteExpiredReviewsQuery, cutoff)
	if err != nil {
		return 0, formatQueryError("delete", "expired reviews", err, map[string]interface{}{
			"cutoff": cutoff,
		})
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

/* Share link queries */

const createShareQuery = `
	INSERT INTO review_shares (token, review_id, created_at)
	VALUES ($1, $2, NOW())
	RETURNING token, review_id, created_at`

const getSharedReviewQuery = `
	SELECT r.id, r.account_id, r.code_content, r.review_result, r.language, r.filename, r.table_structures, r.data_volume, r.score, r.created_at
	FROM code_reviews r
	JOIN review_shares s ON s.review_id = r.id
	WHERE s.token = $1`

/* CreateShare creates a public share link for a review */
func (q *Queries) CreateShare(ctx context.Context, token string, reviewID uuid.UUID) (*ReviewShare, error) {
	var share ReviewShare
	err := q.ext.GetContext(ctx, &share, createShareQuery, token, reviewID)
	if err != nil {
		return nil, formatQueryError("create", "share", err, map[string]interface{}{
			"review_id": reviewID,
		})
	}
	return &share, nil
}

/* GetSharedReview retrieves the review behind a share token */
func (q *Queries) GetSharedReview(ctx context.Context, token string) (*CodeReview, error) {
	var review CodeReview
	err := q.ext.GetContext(ctx, &review, getSharedReviewQuery, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("shared review: %w", ErrNotFound)
		}
		return nil, formatQueryError("get", "shared review", err, nil)
	}
	return &review, nil
}
