/*-------------------------------------------------------------------------
 *
 * dispatcher_test.go
 *    Tests for approval email dispatch
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 *-------------------------------------------------------------------------
 */

package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type capturingSender struct {
	enabled  bool
	failWith error
	to       []string
	subjects []string
	bodies   []string
}

func (s *capturingSender) SendEmail(ctx context.Context, to, subject, body string) error {
	return s.record(to, subject, body)
}

func (s *capturingSender) SendHTMLEmail(ctx context.Context, to, subject, htmlBody string) error {
	return s.record(to, subject, htmlBody)
}

func (s *capturingSender) record(to, subject, body string) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.to = append(s.to, to)
	s.subjects = append(s.subjects, subject)
	s.bodies = append(s.bodies, body)
	return nil
}

func (s *capturingSender) IsEnabled() bool {
	return s.enabled
}

func TestNotifyApprovalRequested(t *testing.T) {
	sender := &capturingSender{enabled: true}
	d := NewDispatcher(sender, "admin@example.com", "https://codescore.example.com/")

	d.NotifyApprovalRequested(context.Background(), "user@example.com", "evaluating the tool", "tok-123")

	if len(sender.to) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(sender.to))
	}
	if sender.to[0] != "admin@example.com" {
		t.Errorf("recipient = %s, want admin", sender.to[0])
	}

	body := sender.bodies[0]
	if !strings.Contains(body, "https://codescore.example.com/api/v1/approvals/decide?token=tok-123&action=approve") {
		t.Error("body missing approve link")
	}
	if !strings.Contains(body, "action=deny") {
		t.Error("body missing deny link")
	}
	if !strings.Contains(body, "evaluating the tool") {
		t.Error("body missing request reason")
	}
}

func TestNotifyApprovalRequestedEscapesHTML(t *testing.T) {
	sender := &capturingSender{enabled: true}
	d := NewDispatcher(sender, "admin@example.com", "https://codescore.example.com")

	d.NotifyApprovalRequested(context.Background(), "user@example.com", "<script>alert(1)</script>", "tok")

	if strings.Contains(sender.bodies[0], "<script>") {
		t.Error("reason not HTML-escaped")
	}
}

func TestNotifyDisabledSenderIsNoop(t *testing.T) {
	sender := &capturingSender{enabled: false}
	d := NewDispatcher(sender, "admin@example.com", "https://codescore.example.com")

	d.NotifyApprovalRequested(context.Background(), "user@example.com", "", "tok")
	d.NotifyAccountApproved(context.Background(), "user@example.com")

	if len(sender.to) != 0 {
		t.Errorf("disabled sender delivered %d emails", len(sender.to))
	}
}

func TestNotifySendFailureDoesNotPanic(t *testing.T) {
	sender := &capturingSender{enabled: true, failWith: errors.New("smtp down")}
	d := NewDispatcher(sender, "admin@example.com", "https://codescore.example.com")

	/* Failures are logged and swallowed */
	d.NotifyApprovalRequested(context.Background(), "user@example.com", "", "tok")
	d.NotifyAccountApproved(context.Background(), "user@example.com")
}

func TestNotifyAccountApproved(t *testing.T) {
	sender := &capturingSender{enabled: true}
	d := NewDispatcher(sender, "admin@example.com", "https://codescore.example.com")

	d.NotifyAccountApproved(context.Background(), "user@example.com")

	if len(sender.to) != 1 || sender.to[0] != "user@example.com" {
		t.Fatalf("welcome email recipients = %v", sender.to)
	}
	if !strings.Contains(sender.subjects[0], "ready") {
		t.Errorf("subject = %q", sender.subjects[0])
	}
}

func TestEmailServiceDisabledWithoutHost(t *testing.T) {
	svc := NewEmailService("", 0, "", "", "")
	if svc.IsEnabled() {
		t.Error("service with no host should be disabled")
	}
	if err := svc.SendEmail(context.Background(), "a@b.com", "s", "b"); err == nil {
		t.Error("disabled service should refuse to send")
	}
}
