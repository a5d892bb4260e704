/*-------------------------------------------------------------------------
 *
 * service.go
 *    Review orchestration for the CodeScore server
 *
 * Validates submissions, calls the LLM provider, extracts the score,
 * and persists results with their share links.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/review/service.go
 *
 *-------------------------------------------------------------------------
 */

package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/arjunKumbakkara/codeScore/internal/auth"
	"github.com/arjunKumbakkara/codeScore/internal/db"
	"github.com/arjunKumbakkara/codeScore/internal/metrics"
)

/* ErrValidation is returned for unusable submissions */
var ErrValidation = errors.New("invalid submission")

const maxCodeBytes = 256 * 1024

/* Completer produces a review for a prompt */
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

/* Store persists reviews and share links */
type Store interface {
	CreateReview(ctx context.Context, review *db.CodeReview) (*db.CodeReview, error)
	ListReviews(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]db.CodeReview, error)
	GetReview(ctx context.Context, id, accountID uuid.UUID) (*db.CodeReview, error)
	DeleteReview(ctx context.Context, id, accountID uuid.UUID) error
	CreateShare(ctx context.Context, token string, reviewID uuid.UUID) (*db.ReviewShare, error)
	GetSharedReview(ctx context.Context, token string) (*db.CodeReview, error)
}

/* Submission is a review request from a signed-in user */
type Submission struct {
	Code            string
	Language        string
	Filename        string
	TableStructures string
	DataVolume      string
}

/* Service coordinates review generation and storage */
type Service struct {
	store    Store
	provider Completer
}

/* NewService creates a review service */
func NewService(store Store, provider Completer) *Service {
	return &Service{store: store, provider: provider}
}

/*
 * Submit runs a review end to end. SQL submissions without their own
 * schema context get the built-in production catalog so the provider
 * always sees real table definitions and volumes.
 */
func (s *Service) Submit(ctx context.Context, accountID uuid.UUID, sub Submission) (*db.CodeReview, error) {
	code := strings.TrimSpace(sub.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}
	if len(code) > maxCodeBytes {
		return nil, fmt.Errorf("%w: code exceeds %d bytes", ErrValidation, maxCodeBytes)
	}

	language := strings.ToLower(strings.TrimSpace(sub.Language))
	tableStructures := sub.TableStructures
	dataVolume := sub.DataVolume
	if language == "sql" {
		if tableStructures == "" {
			tableStructures = DefaultTableStructures()
		}
		if dataVolume == "" {
			dataVolume = DefaultDataVolumes()
		}
	}

	prompt := BuildPrompt(code, language, tableStructures, dataVolume)
	result, err := s.provider.Complete(ctx, []Message{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, err
	}

	score := ExtractScore(result)

	review := &db.CodeReview{
		AccountID:       accountID,
		CodeContent:     code,
		ReviewResult:    result,
		Language:        sql.NullString{String: language, Valid: language != ""},
		Filename:        sql.NullString{String: sub.Filename, Valid: sub.Filename != ""},
		TableStructures: sql.NullString{String: tableStructures, Valid: language == "sql"},
		DataVolume:      sql.NullString{String: dataVolume, Valid: language == "sql"},
		Score:           sql.NullInt64{Int64: int64(score), Valid: score > 0},
	}

	stored, err := s.store.CreateReview(ctx, review)
	if err != nil {
		return nil, err
	}

	metrics.InfoWithContext(ctx, "Review completed", map[string]interface{}{
		"review_id":  stored.ID,
		"account_id": accountID,
		"language":   language,
		"score":      score,
	})

	return stored, nil
}

/* List returns an account's review history, newest first */
func (s *Service) List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]db.CodeReview, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListReviews(ctx, accountID, limit, offset)
}

/* Get retrieves a single review owned by the account */
func (s *Service) Get(ctx context.Context, id, accountID uuid.UUID) (*db.CodeReview, error) {
	return s.store.GetReview(ctx, id, accountID)
}

/* Delete removes a review owned by the account */
func (s *Service) Delete(ctx context.Context, id, accountID uuid.UUID) error {
	return s.store.DeleteReview(ctx, id, accountID)
}

/* Share creates a public share link for a review the account owns */
func (s *Service) Share(ctx context.Context, id, accountID uuid.UUID) (*db.ReviewShare, error) {
	/* Ownership check before minting the token */
	if _, err := s.store.GetReview(ctx, id, accountID); err != nil {
		return nil, err
	}

	token, err := auth.NewShareToken()
	if err != nil {
		return nil, err
	}
	return s.store.CreateShare(ctx, token, id)
}

/* GetShared retrieves the review behind a public share token */
func (s *Service) GetShared(ctx context.Context, token string) (*db.CodeReview, error) {
	return s.store.GetSharedReview(ctx, token)
}
