/*-------------------------------------------------------------------------
 *
 * client.go
 *    LLM provider client for the CodeScore server
 *
 * Talks to an OpenAI-compatible chat completions endpoint (DeepSeek
 * in production) to generate code and SQL reviews.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/review/client.go
 *
 *-------------------------------------------------------------------------
 */

package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arjunKumbakkara/codeScore/internal/metrics"
)

/* ErrProvider is returned when the review provider rejects or fails a call */
var ErrProvider = errors.New("review provider error")

/* ErrProviderTimeout is returned when the provider does not answer in time */
var ErrProviderTimeout = errors.New("review provider timed out")

/* Message is a chat message in the provider wire format */
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

/* chatRequest represents an OpenAI-compatible chat completions request */
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

/* chatResponse represents an OpenAI-compatible chat completions response */
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int     `json:"index"`
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

/* ProviderClient handles communication with the review LLM provider */
type ProviderClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	timeout    time.Duration
}

/* NewProviderClient creates a client for an OpenAI-compatible endpoint */
func NewProviderClient(baseURL, apiKey, model string, maxTokens int, timeout time.Duration) *ProviderClient {
	if baseURL == "" {
		baseURL = "https://api.deepseek.com/v1"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &ProviderClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		timeout:    timeout,
	}
}

/* Complete sends a chat completion request and returns the reply text */
func (c *ProviderClient) Complete(ctx context.Context, messages []Message) (string, error) {
	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)

	req := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.1,
		MaxTokens:   c.maxTokens,
		Stream:      false,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.RecordProviderCall(c.model, "error", time.Since(start))
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", fmt.Errorf("%w after %s", ErrProviderTimeout, c.timeout)
		}
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.RecordProviderCall(c.model, fmt.Sprintf("http_%d", resp.StatusCode), time.Since(start))
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return "", fmt.Errorf("%w: invalid API key (status 401)", ErrProvider)
		case http.StatusTooManyRequests:
			return "", fmt.Errorf("%w: rate limit exceeded (status 429)", ErrProvider)
		default:
			return "", fmt.Errorf("%w: status %d: %s", ErrProvider, resp.StatusCode, string(body))
		}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		metrics.RecordProviderCall(c.model, "decode_error", time.Since(start))
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrProvider, err)
	}

	metrics.RecordProviderCall(c.model, "success", time.Since(start))
	metrics.RecordProviderTokens(c.model, chatResp.Usage.PromptTokens, chatResp.Usage.CompletionTokens)

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty response", ErrProvider)
	}
	return chatResp.Choices[0].Message.Content, nil
}
