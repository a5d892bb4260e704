/*-------------------------------------------------------------------------
 *
 * dispatcher.go
 *    Approval and account email dispatch
 *
 * Builds and sends the admin decision email for new signup requests
 * and the welcome email for freshly provisioned accounts. Delivery
 * failures are logged and never propagate to the caller.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/notifications/dispatcher.go
 *
 *-------------------------------------------------------------------------
 */

package notifications

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/arjunKumbakkara/codeScore/internal/metrics"
)

/* Dispatcher sends approval workflow emails */
type Dispatcher struct {
	sender     Sender
	adminEmail string
	baseURL    string
}

/* NewDispatcher creates a dispatcher for the given admin address and public base URL */
func NewDispatcher(sender Sender, adminEmail, baseURL string) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		adminEmail: adminEmail,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

/* decisionURL builds an approve or deny link for a token */
func (d *Dispatcher) decisionURL(token, action string) string {
	return fmt.Sprintf("%s/api/v1/approvals/decide?token=%s&action=%s",
		d.baseURL, url.QueryEscape(token), action)
}

/*
 * NotifyApprovalRequested emails the admin a decision link pair for a
 * new signup request. Runs on the caller's goroutine; callers that
 * must not block should invoke it from a goroutine with their own
 * timeout context.
 */
func (d *Dispatcher) NotifyApprovalRequested(ctx context.Context, email, reason, token string) {
	if d.sender == nil || !d.sender.IsEnabled() {
		metrics.WarnWithContext(ctx, "Email disabled, skipping approval notification", map[string]interface{}{
			"email": email,
		})
		return
	}

	subject := fmt.Sprintf("CodeScore access request from %s", email)
	reasonHTML := "<em>no reason given</em>"
	if reason != "" {
		reasonHTML = html.EscapeString(reason)
	}

	body := fmt.Sprintf(`<html><body>
<h2>New access request</h2>
<p><strong>Email:</strong> %s</p>
<p><strong>Reason:</strong> %s</p>
<p><strong>Requested:</strong> %s</p>
<p>
  <a href="%s" style="padding:10px 20px;background:#22c55e;color:#fff;text-decoration:none;border-radius:4px;">Approve</a>
  &nbsp;
  <a href="%s" style="padding:10px 20px;background:#ef4444;color:#fff;text-decoration:none;border-radius:4px;">Deny</a>
</p>
<p>The links are single use. Once a decision is made they stop working.</p>
</body></html>`,
		html.EscapeString(email), reasonHTML,
		time.Now().UTC().Format(time.RFC1123),
		d.decisionURL(token, "approve"),
		d.decisionURL(token, "deny"))

	if err := d.sender.SendHTMLEmail(ctx, d.adminEmail, subject, body); err != nil {
		metrics.RecordNotificationSent("approval_request", "error")
		metrics.ErrorWithContext(ctx, "Failed to send approval notification", err, map[string]interface{}{
			"email": email,
			"admin": d.adminEmail,
		})
		return
	}

	metrics.RecordNotificationSent("approval_request", "success")
	metrics.InfoWithContext(ctx, "Approval notification sent", map[string]interface{}{
		"email": email,
		"admin": d.adminEmail,
	})
}

/* NotifyAccountApproved sends the welcome email after provisioning */
func (d *Dispatcher) NotifyAccountApproved(ctx context.Context, email string) {
	if d.sender == nil || !d.sender.IsEnabled() {
		return
	}

	subject := "Your CodeScore account is ready"
	body := fmt.Sprintf(`<html><body>
<h2>Welcome to CodeScore</h2>
<p>Your access request was approved. Sign in with the email and password you registered:</p>
<p><a href="%s">%s</a></p>
</body></html>`, d.baseURL, d.baseURL)

	if err := d.sender.SendHTMLEmail(ctx, email, subject, body); err != nil {
		metrics.RecordNotificationSent("welcome", "error")
		metrics.ErrorWithContext(ctx, "Failed to send welcome email", err, map[string]interface{}{
			"email": email,
		})
		return
	}

	metrics.RecordNotificationSent("welcome", "success")
}
