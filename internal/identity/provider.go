/*-------------------------------------------------------------------------
 *
 * provider.go
 *    Account provisioning for the CodeScore server
 *
 * Creates confirmed user accounts when an approval is granted.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/identity/provider.go
 *
 *-------------------------------------------------------------------------
 */

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/arjunKumbakkara/codeScore/internal/auth"
	"github.com/arjunKumbakkara/codeScore/internal/db"
	"github.com/arjunKumbakkara/codeScore/internal/metrics"
)

/* ErrAccountExists is returned when the email already has an account */
var ErrAccountExists = errors.New("account already exists")

/* ErrWeakCredential is returned when the stored password fails policy */
var ErrWeakCredential = errors.New("password does not meet requirements")

const minPasswordLength = 6

/* Provisioner creates user accounts on the store it is handed */
type Provisioner interface {
	Provision(ctx context.Context, accounts db.AccountCreator, email, password, approvedBy string) (*db.Account, error)
}

/* DBProvisioner provisions accounts in the accounts table */
type DBProvisioner struct{}

/* NewDBProvisioner creates a database-backed provisioner */
func NewDBProvisioner() *DBProvisioner {
	return &DBProvisioner{}
}

/*
 * Provision creates a confirmed account for an approved email. The
 * caller supplies the account store, so a decision transaction can
 * hand in its own transactional view and the insert commits or rolls
 * back with the decision.
 */
func (p *DBProvisioner) Provision(ctx context.Context, accounts db.AccountCreator, email, password, approvedBy string) (*db.Account, error) {
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: minimum length is %d", ErrWeakCredential, minPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash account credential: %w", err)
	}

	account, err := accounts.CreateAccount(ctx, email, hash, approvedBy)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrAccountExists, email)
		}
		return nil, err
	}

	metrics.InfoWithContext(ctx, "Account provisioned", map[string]interface{}{
		"account_id":  account.ID,
		"email":       email,
		"approved_by": approvedBy,
	})

	return account, nil
}
