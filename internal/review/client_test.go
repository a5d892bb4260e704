/*-------------------------------------------------------------------------
 *
 * client_test.go
 *    Tests for the review provider client
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 *-------------------------------------------------------------------------
 */

package review

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCompleteSuccess(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "deepseek-coder" {
			t.Errorf("model = %s, want deepseek-coder", req.Model)
		}
		if req.Stream {
			t.Error("stream should be false")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Looks good. 8/10"}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	})

	c := NewProviderClient(srv.URL, "test-key", "deepseek-coder", 2000, 5*time.Second)
	result, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "review this"}})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if result != "Looks good. 8/10" {
		t.Errorf("result = %q", result)
	}
}

func TestCompleteErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"rate limited", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			c := NewProviderClient(srv.URL, "test-key", "deepseek-coder", 2000, 5*time.Second)
			_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
			if !errors.Is(err, ErrProvider) {
				t.Errorf("error = %v, want ErrProvider", err)
			}
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	})

	c := NewProviderClient(srv.URL, "test-key", "deepseek-coder", 2000, 50*time.Millisecond)
	_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	if !errors.Is(err, ErrProviderTimeout) {
		t.Errorf("error = %v, want ErrProviderTimeout", err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	c := NewProviderClient(srv.URL, "test-key", "deepseek-coder", 2000, 5*time.Second)
	_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	if !errors.Is(err, ErrProvider) {
		t.Errorf("error = %v, want ErrProvider", err)
	}
}
