/*-------------------------------------------------------------------------
 *
 * manager.go
 *    Signup approval workflow for the CodeScore server
 *
 * Coordinates the intake of access requests, the emailed decision
 * links, and the single-winner approve/deny transition that ends
 * with a provisioned account.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/approval/manager.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/arjunKumbakkara/codeScore/internal/auth"
	"github.com/arjunKumbakkara/codeScore/internal/db"
	"github.com/arjunKumbakkara/codeScore/internal/identity"
	"github.com/arjunKumbakkara/codeScore/internal/metrics"
)

/* ErrValidation is returned for malformed intake requests */
var ErrValidation = errors.New("invalid approval request")

/* ErrDuplicateRequest is returned when the email already has a pending request */
var ErrDuplicateRequest = errors.New("a request for this email is already pending")

/* ErrInvalidOrExpiredToken is returned for unknown or already-decided tokens */
var ErrInvalidOrExpiredToken = errors.New("invalid or expired approval token")

/* ErrAccountExists is returned when approving an email that already has an account */
var ErrAccountExists = errors.New("an account already exists for this email")

/* Decision actions accepted on the emailed links */
const (
	ActionApprove = "approve"
	ActionDeny    = "deny"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 6

/* Store is the persistence surface the manager needs */
type Store interface {
	CreateApprovalRequest(ctx context.Context, email, reason, password, token string) (*db.ApprovalRequest, error)
	DecideApproval(ctx context.Context, token, status, decidedBy string,
		provision func(ctx context.Context, accounts db.AccountCreator, email, password string) error) (*db.ApprovalRequest, error)
	ListPendingApprovals(ctx context.Context) ([]db.ApprovalRequest, error)
}

/* Notifier sends approval workflow emails */
type Notifier interface {
	NotifyApprovalRequested(ctx context.Context, email, reason, token string)
	NotifyAccountApproved(ctx context.Context, email string)
}

/* DecisionResult reports the outcome of an approve or deny */
type DecisionResult struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

/* Manager runs the approval pipeline */
type Manager struct {
	store       Store
	provisioner identity.Provisioner
	notifier    Notifier
	adminEmail  string
}

/* NewManager creates an approval manager */
func NewManager(store Store, provisioner identity.Provisioner, notifier Notifier, adminEmail string) *Manager {
	return &Manager{
		store:       store,
		provisioner: provisioner,
		notifier:    notifier,
		adminEmail:  adminEmail,
	}
}

/*
 * Intake records a new access request and emails the admin a pair of
 * decision links. The plaintext password is held only until a decision
 * is made. Notification delivery is fire and forget: a dead SMTP
 * server must not lose the request.
 */
func (m *Manager) Intake(ctx context.Context, email, reason, password string) (*db.ApprovalRequest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	reason = strings.TrimSpace(reason)
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: malformed email address", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if len(reason) > 2000 {
		return nil, fmt.Errorf("%w: reason too long", ErrValidation)
	}

	token, err := auth.NewApprovalToken()
	if err != nil {
		return nil, err
	}

	req, err := m.store.CreateApprovalRequest(ctx, email, reason, password, token)
	if err != nil {
		if errors.Is(err, db.ErrDuplicatePending) {
			metrics.RecordApprovalRequest("duplicate")
			return nil, ErrDuplicateRequest
		}
		metrics.RecordApprovalRequest("error")
		return nil, err
	}

	metrics.RecordApprovalRequest("accepted")
	metrics.InfoWithContext(ctx, "Approval request received", map[string]interface{}{
		"approval_id": req.ID,
		"email":       email,
	})

	if m.notifier != nil {
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			m.notifier.NotifyApprovalRequested(nctx, email, reason, token)
		}()
	}

	return req, nil
}

/*
 * Decide executes an emailed decision link. Exactly one caller wins a
 * race on the same token; the rest get ErrInvalidOrExpiredToken. An
 * approval that fails provisioning leaves the request pending so the
 * link can be retried; that includes an email that already has an
 * account, which fails with ErrAccountExists.
 */
func (m *Manager) Decide(ctx context.Context, token, action, decidedBy string) (*DecisionResult, error) {
	var status string
	switch action {
	case ActionApprove:
		status = db.ApprovalStatusApproved
	case ActionDeny:
		status = db.ApprovalStatusDenied
	default:
		return nil, fmt.Errorf("%w: action must be approve or deny", ErrValidation)
	}
	if decidedBy == "" {
		decidedBy = m.adminEmail
	}

	var provision func(ctx context.Context, accounts db.AccountCreator, email, password string) error
	if status == db.ApprovalStatusApproved {
		provision = func(ctx context.Context, accounts db.AccountCreator, email, password string) error {
			_, err := m.provisioner.Provision(ctx, accounts, email, password, decidedBy)
			if errors.Is(err, identity.ErrAccountExists) {
				return fmt.Errorf("%w: %s", ErrAccountExists, email)
			}
			return err
		}
	}

	req, err := m.store.DecideApproval(ctx, token, status, decidedBy, provision)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNoPendingApproval):
			metrics.RecordApprovalDecision(action, "stale_token")
			return nil, ErrInvalidOrExpiredToken
		case errors.Is(err, ErrAccountExists):
			metrics.RecordApprovalDecision(action, "account_exists")
			return nil, err
		default:
			metrics.RecordApprovalDecision(action, "error")
			return nil, err
		}
	}

	metrics.RecordApprovalDecision(action, "success")
	metrics.InfoWithContext(ctx, "Approval decided", map[string]interface{}{
		"approval_id": req.ID,
		"email":       req.Email,
		"status":      status,
		"decided_by":  decidedBy,
	})

	result := &DecisionResult{Success: true, Email: req.Email, Status: status}
	if status == db.ApprovalStatusApproved {
		result.Message = fmt.Sprintf("Account for %s has been approved and created.", req.Email)
		if m.notifier != nil {
			go func() {
				nctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				m.notifier.NotifyAccountApproved(nctx, req.Email)
			}()
		}
	} else {
		result.Message = fmt.Sprintf("Request from %s has been denied.", req.Email)
	}

	return result, nil
}

/* ListPending returns all requests awaiting a decision, oldest first */
func (m *Manager) ListPending(ctx context.Context) ([]db.ApprovalRequest, error) {
	return m.store.ListPendingApprovals(ctx)
}
