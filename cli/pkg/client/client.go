/*-------------------------------------------------------------------------
 *
 * client.go
 *    HTTP client for the CodeScore admin API
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/cli/pkg/client/client.go
 *
 *-------------------------------------------------------------------------
 */

package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL    string
	adminKey   string
	httpClient *http.Client
}

/* PendingApproval is one undecided access request */
type PendingApproval struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

/* DecisionResult reports the outcome of an approve or deny */
type DecisionResult struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewClient(baseURL, adminKey string) *Client {
	return &Client{
		baseURL:  baseURL,
		adminKey: adminKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

/* ListPending fetches the admin queue of undecided requests */
func (c *Client) ListPending() ([]PendingApproval, error) {
	resp, err := c.makeRequest("GET", "/api/v1/admin/approvals/pending", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var pending []PendingApproval
	if err := json.NewDecoder(resp.Body).Decode(&pending); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return pending, nil
}

/* Decide executes a decision token from the CLI instead of the email link */
func (c *Client) Decide(token, action string) (*DecisionResult, error) {
	path := fmt.Sprintf("/api/v1/approvals/decide?token=%s&action=%s",
		url.QueryEscape(token), url.QueryEscape(action))
	resp, err := c.makeRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result DecisionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

/* SweepResult reports how many expired reviews a sweep removed */
type SweepResult struct {
	ReviewsDeleted int64 `json:"reviews_deleted"`
}

/* TriggerSweep runs the review retention sweep immediately */
func (c *Client) TriggerSweep() (*SweepResult, error) {
	resp, err := c.makeRequest("POST", "/api/v1/admin/sweep", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result SweepResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func (c *Client) makeRequest(method, path string, body io.Reader) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Admin-Key", c.adminKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
