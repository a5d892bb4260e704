/*-------------------------------------------------------------------------
 *
 * manager_test.go
 *    Tests for the approval workflow
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/arjunKumbakkara/codeScore/internal/db"
	"github.com/arjunKumbakkara/codeScore/internal/identity"
)

/*
 * memStore mirrors the database semantics the manager depends on: one
 * pending request per email, and a decision that only lands on a row
 * still in pending under a lock held across the provision callback.
 */
type memStore struct {
	mu       sync.Mutex
	requests map[string]*db.ApprovalRequest
}

func newMemStore() *memStore {
	return &memStore{requests: make(map[string]*db.ApprovalRequest)}
}

func (s *memStore) CreateApprovalRequest(ctx context.Context, email, reason, password, token string) (*db.ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.Email == email && r.Status == db.ApprovalStatusPending {
			return nil, fmt.Errorf("approval for %s: %w", email, db.ErrDuplicatePending)
		}
	}
	req := &db.ApprovalRequest{
		ID:            uuid.New(),
		Email:         email,
		Password:      password,
		Status:        db.ApprovalStatusPending,
		ApprovalToken: token,
		CreatedAt:     time.Now().UTC(),
	}
	s.requests[token] = req
	return req, nil
}

func (s *memStore) DecideApproval(ctx context.Context, token, status, decidedBy string,
	provision func(ctx context.Context, accounts db.AccountCreator, email, password string) error) (*db.ApprovalRequest, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[token]
	if !ok || req.Status != db.ApprovalStatusPending {
		return nil, db.ErrNoPendingApproval
	}

	if provision != nil {
		if err := provision(ctx, nil, req.Email, req.Password); err != nil {
			return nil, err
		}
	}

	req.Status = status
	req.Password = ""
	result := *req
	return &result, nil
}

func (s *memStore) ListPendingApprovals(ctx context.Context) ([]db.ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.ApprovalRequest
	for _, r := range s.requests {
		if r.Status == db.ApprovalStatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) tokenFor(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, r := range s.requests {
		if r.Email == email {
			return token
		}
	}
	return ""
}

type memProvisioner struct {
	mu       sync.Mutex
	accounts map[string]bool
	failWith error
	calls    int
}

func newMemProvisioner() *memProvisioner {
	return &memProvisioner{accounts: make(map[string]bool)}
}

func (p *memProvisioner) Provision(ctx context.Context, accounts db.AccountCreator, email, password, approvedBy string) (*db.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failWith != nil {
		return nil, p.failWith
	}
	if p.accounts[email] {
		return nil, fmt.Errorf("%w: %s", identity.ErrAccountExists, email)
	}
	p.accounts[email] = true
	return &db.Account{ID: uuid.New(), Email: email}, nil
}

func newTestManager(store *memStore, provisioner identity.Provisioner) *Manager {
	return NewManager(store, provisioner, nil, "admin@example.com")
}

func TestIntakeValidation(t *testing.T) {
	m := newTestManager(newMemStore(), newMemProvisioner())

	tests := []struct {
		name     string
		email    string
		reason   string
		password string
	}{
		{"no at sign", "not-an-email", "need access", "secret1"},
		{"empty email", "", "need access", "secret1"},
		{"missing domain", "user@", "need access", "secret1"},
		{"short password", "user@example.com", "need access", "abc"},
		{"empty reason", "user@example.com", "", "secret1"},
		{"whitespace reason", "user@example.com", "   ", "secret1"},
		{"oversized reason", "user@example.com", strings.Repeat("x", 2001), "secret1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Intake(context.Background(), tt.email, tt.reason, tt.password)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Intake() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestIntakeNormalizesEmail(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store, newMemProvisioner())

	req, err := m.Intake(context.Background(), "  User@Example.COM ", "trying it out", "secret1")
	if err != nil {
		t.Fatalf("Intake() error = %v", err)
	}
	if req.Email != "user@example.com" {
		t.Errorf("Email = %q, want normalized lowercase", req.Email)
	}
	if req.Status != db.ApprovalStatusPending {
		t.Errorf("Status = %s, want pending", req.Status)
	}
}

func TestIntakeRejectsDuplicatePending(t *testing.T) {
	m := newTestManager(newMemStore(), newMemProvisioner())

	if _, err := m.Intake(context.Background(), "user@example.com", "need access", "secret1"); err != nil {
		t.Fatalf("first Intake() error = %v", err)
	}
	_, err := m.Intake(context.Background(), "user@example.com", "need access", "secret1")
	if !errors.Is(err, ErrDuplicateRequest) {
		t.Errorf("second Intake() error = %v, want ErrDuplicateRequest", err)
	}
}

func TestDecideApproveProvisionsAccount(t *testing.T) {
	store := newMemStore()
	provisioner := newMemProvisioner()
	m := newTestManager(store, provisioner)

	if _, err := m.Intake(context.Background(), "user@example.com", "need access", "secret1"); err != nil {
		t.Fatalf("Intake() error = %v", err)
	}
	token := store.tokenFor("user@example.com")

	result, err := m.Decide(context.Background(), token, ActionApprove, "admin@example.com")
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if !result.Success {
		t.Error("Success = false, want true")
	}
	if result.Status != db.ApprovalStatusApproved {
		t.Errorf("Status = %s, want approved", result.Status)
	}
	if !provisioner.accounts["user@example.com"] {
		t.Error("account was not provisioned")
	}
	/* Plaintext credential must be gone after the decision */
	if store.requests[token].Password != "" {
		t.Error("stored password not wiped after decision")
	}
}

func TestDecideDenyDoesNotProvision(t *testing.T) {
	store := newMemStore()
	provisioner := newMemProvisioner()
	m := newTestManager(store, provisioner)

	if _, err := m.Intake(context.Background(), "user@example.com", "need access", "secret1"); err != nil {
		t.Fatalf("Intake() error = %v", err)
	}
	token := store.tokenFor("user@example.com")

	result, err := m.Decide(context.Background(), token, ActionDeny, "")
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if result.Status != db.ApprovalStatusDenied {
		t.Errorf("Status = %s, want denied", result.Status)
	}
	if provisioner.calls != 0 {
		t.Errorf("deny should not call provisioner, called %d times", provisioner.calls)
	}
}

func TestDecideInvalidAction(t *testing.T) {
	m := newTestManager(newMemStore(), newMemProvisioner())
	if _, err := m.Decide(context.Background(), "tok", "maybe", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("Decide() error = %v, want ErrValidation", err)
	}
}

func TestDecideUnknownToken(t *testing.T) {
	m := newTestManager(newMemStore(), newMemProvisioner())
	if _, err := m.Decide(context.Background(), "no-such-token", ActionApprove, ""); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Errorf("Decide() error = %v, want ErrInvalidOrExpiredToken", err)
	}
}

func TestDecideTokenSingleUse(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store, newMemProvisioner())

	if _, err := m.Intake(context.Background(), "user@example.com", "need access", "secret1"); err != nil {
		t.Fatalf("Intake() error = %v", err)
	}
	token := store.tokenFor("user@example.com")

	if _, err := m.Decide(context.Background(), token, ActionApprove, ""); err != nil {
		t.Fatalf("first Decide() error = %v", err)
	}
	if _, err := m.Decide(context.Background(), token, ActionDeny, ""); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Errorf("second Decide() error = %v, want ErrInvalidOrExpiredToken", err)
	}
}

func TestDecideConcurrentSingleWinner(t *testing.T) {
	store := newMemStore()
	provisioner := newMemProvisioner()
	m := newTestManager(store, provisioner)

	if _, err := m.Intake(context.Background(), "user@example.com", "need access", "secret1"); err != nil {
		t.Fatalf("Intake() error = %v", err)
	}
	token := store.tokenFor("user@example.com")

	const racers = 16
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Decide(context.Background(), token, ActionApprove, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, stale int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrInvalidOrExpiredToken):
			stale++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}
	if stale != racers-1 {
		t.Errorf("stale = %d, want %d", stale, racers-1)
	}
	if len(provisioner.accounts) != 1 {
		t.Errorf("accounts provisioned = %d, want 1", len(provisioner.accounts))
	}
}

func TestDecideProvisionFailureKeepsPending(t *testing.T) {
	store := newMemStore()
	provisioner := newMemProvisioner()
	provisioner.failWith = errors.New("identity backend down")
	m := newTestManager(store, provisioner)

	if _, err := m.Intake(context.Background(), "user@example.com", "need access", "secret1"); err != nil {
		t.Fatalf("Intake() error = %v", err)
	}
	token := store.tokenFor("user@example.com")

	if _, err := m.Decide(context.Background(), token, ActionApprove, ""); err == nil {
		t.Fatal("Decide() should fail when provisioning fails")
	}
	if store.requests[token].Status != db.ApprovalStatusPending {
		t.Errorf("Status = %s, want pending after provision failure", store.requests[token].Status)
	}

	/* The link stays usable: a retry after recovery succeeds */
	provisioner.failWith = nil
	if _, err := m.Decide(context.Background(), token, ActionApprove, ""); err != nil {
		t.Errorf("retry Decide() error = %v", err)
	}
}

func TestDecideExistingAccountKeepsPending(t *testing.T) {
	store := newMemStore()
	provisioner := newMemProvisioner()
	provisioner.accounts["user@example.com"] = true
	m := newTestManager(store, provisioner)

	if _, err := m.Intake(context.Background(), "user@example.com", "need access", "secret1"); err != nil {
		t.Fatalf("Intake() error = %v", err)
	}
	token := store.tokenFor("user@example.com")

	_, err := m.Decide(context.Background(), token, ActionApprove, "")
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("Decide() error = %v, want ErrAccountExists", err)
	}
	if store.requests[token].Status != db.ApprovalStatusPending {
		t.Errorf("Status = %s, want pending when the account already exists", store.requests[token].Status)
	}

	/* Deny still works on the untouched request */
	result, err := m.Decide(context.Background(), token, ActionDeny, "")
	if err != nil {
		t.Fatalf("deny Decide() error = %v", err)
	}
	if result.Status != db.ApprovalStatusDenied {
		t.Errorf("Status = %s, want denied", result.Status)
	}
}

func TestListPending(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store, newMemProvisioner())

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := m.Intake(context.Background(), email, "need access", "secret1"); err != nil {
			t.Fatalf("Intake(%s) error = %v", email, err)
		}
	}
	if _, err := m.Decide(context.Background(), store.tokenFor("a@example.com"), ActionDeny, ""); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}

	pending, err := m.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if pending[0].Email != "b@example.com" {
		t.Errorf("pending email = %s, want b@example.com", pending[0].Email)
	}
}
