/*-------------------------------------------------------------------------
 *
 * handlers_test.go
 *    Tests for the review HTTP endpoints
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/arjunKumbakkara/codeScore/internal/auth"
	"github.com/arjunKumbakkara/codeScore/internal/db"
	"github.com/arjunKumbakkara/codeScore/internal/review"
)

/* stubReviewStore keeps reviews and shares in memory */
type stubReviewStore struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*db.CodeReview
	shares  map[string]uuid.UUID
}

func newStubReviewStore() *stubReviewStore {
	return &stubReviewStore{
		reviews: make(map[uuid.UUID]*db.CodeReview),
		shares:  make(map[string]uuid.UUID),
	}
}

func (s *stubReviewStore) CreateReview(ctx context.Context, r *db.CodeReview) (*db.CodeReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *r
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	s.reviews[stored.ID] = &stored
	return &stored, nil
}

func (s *stubReviewStore) ListReviews(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]db.CodeReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []db.CodeReview
	for _, r := range s.reviews {
		if r.AccountID == accountID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubReviewStore) GetReview(ctx context.Context, id, accountID uuid.UUID) (*db.CodeReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok || r.AccountID != accountID {
		return nil, db.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *stubReviewStore) DeleteReview(ctx context.Context, id, accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok || r.AccountID != accountID {
		return db.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *stubReviewStore) CreateShare(ctx context.Context, token string, reviewID uuid.UUID) (*db.ReviewShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shares[token] = reviewID
	return &db.ReviewShare{Token: token, ReviewID: reviewID, CreatedAt: time.Now()}, nil
}

func (s *stubReviewStore) GetSharedReview(ctx context.Context, token string) (*db.CodeReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviewID, ok := s.shares[token]
	if !ok {
		return nil, db.ErrNotFound
	}
	r, ok := s.reviews[reviewID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

/* stubCompleter returns a canned review or a canned error */
type stubCompleter struct {
	result string
	err    error
}

func (c *stubCompleter) Complete(ctx context.Context, messages []review.Message) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.result, nil
}

/* injectSession places claims in the context the way session auth does */
func injectSession(accountID uuid.UUID, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := &auth.SessionClaims{AccountID: accountID.String(), Email: "user@example.com"}
		ctx := context.WithValue(r.Context(), sessionKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newReviewTestRouter(store *stubReviewStore, completer *stubCompleter, accountID uuid.UUID) *mux.Router {
	reviews := review.NewService(store, completer)
	handlers := NewHandlers(nil, reviews, nil, nil, "http://localhost:8080")

	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)

	user := router.PathPrefix("/api/v1").Subrouter()
	user.Use(func(next http.Handler) http.Handler { return injectSession(accountID, next) })
	user.HandleFunc("/reviews", handlers.SubmitReview).Methods("POST")
	user.HandleFunc("/reviews", handlers.ListReviews).Methods("GET")
	user.HandleFunc("/reviews/{id}", handlers.GetReview).Methods("GET")
	user.HandleFunc("/reviews/{id}", handlers.DeleteReview).Methods("DELETE")
	user.HandleFunc("/reviews/{id}/share", handlers.ShareReview).Methods("POST")

	router.HandleFunc("/api/v1/shared/{token}", handlers.GetSharedReview).Methods("GET")
	return router
}

func TestSubmitReviewCreated(t *testing.T) {
	store := newStubReviewStore()
	completer := &stubCompleter{result: "Looks solid.\n\nScore: 8/10"}
	accountID := uuid.New()
	router := newReviewTestRouter(store, completer, accountID)

	rec := postJSON(t, router, "/api/v1/reviews", SubmitReviewRequest{
		Code:     "func main() {}",
		Language: "go",
		Filename: "main.go",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ReviewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Score != 8 {
		t.Errorf("score = %d, want 8", resp.Score)
	}
	if resp.ReviewResult != completer.result {
		t.Errorf("review result = %q", resp.ReviewResult)
	}
	if len(store.reviews) != 1 {
		t.Errorf("stored reviews = %d, want 1", len(store.reviews))
	}
}

func TestSubmitReviewErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		err        error
		wantStatus int
	}{
		{"empty code", "", nil, http.StatusBadRequest},
		{"provider timeout", "SELECT 1", review.ErrProviderTimeout, http.StatusGatewayTimeout},
		{"provider failure", "SELECT 1", fmt.Errorf("%w: upstream sad", review.ErrProvider), http.StatusBadGateway},
		{"unknown failure", "SELECT 1", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStubReviewStore()
			completer := &stubCompleter{result: "fine", err: tt.err}
			router := newReviewTestRouter(store, completer, uuid.New())

			rec := postJSON(t, router, "/api/v1/reviews", SubmitReviewRequest{Code: tt.code})
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if len(store.reviews) != 0 {
				t.Errorf("failed submission was stored")
			}
		})
	}
}

func TestListReviewsScopedToAccount(t *testing.T) {
	store := newStubReviewStore()
	completer := &stubCompleter{result: "ok, 7/10"}
	mine := uuid.New()
	theirs := uuid.New()

	store.CreateReview(context.Background(), &db.CodeReview{AccountID: mine, CodeContent: "a", ReviewResult: "r"})
	store.CreateReview(context.Background(), &db.CodeReview{AccountID: theirs, CodeContent: "b", ReviewResult: "r"})

	router := newReviewTestRouter(store, completer, mine)
	req := httptest.NewRequest("GET", "/api/v1/reviews", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp []ReviewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp) != 1 {
		t.Errorf("reviews = %d, want 1", len(resp))
	}
}

func TestGetReviewNotFound(t *testing.T) {
	store := newStubReviewStore()
	router := newReviewTestRouter(store, &stubCompleter{result: "ok"}, uuid.New())

	req := httptest.NewRequest("GET", "/api/v1/reviews/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	/* Malformed ID is a client error, not a lookup miss */
	req = httptest.NewRequest("GET", "/api/v1/reviews/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteReview(t *testing.T) {
	store := newStubReviewStore()
	accountID := uuid.New()
	stored, _ := store.CreateReview(context.Background(), &db.CodeReview{
		AccountID: accountID, CodeContent: "x", ReviewResult: "r",
	})

	router := newReviewTestRouter(store, &stubCompleter{result: "ok"}, accountID)
	req := httptest.NewRequest("DELETE", "/api/v1/reviews/"+stored.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(store.reviews) != 0 {
		t.Error("review still present after delete")
	}

	/* A second delete finds nothing */
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/v1/reviews/"+stored.ID.String(), nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want 404", rec.Code)
	}
}

func TestShareAndFetchSharedReview(t *testing.T) {
	store := newStubReviewStore()
	accountID := uuid.New()
	stored, _ := store.CreateReview(context.Background(), &db.CodeReview{
		AccountID: accountID, CodeContent: "SELECT 1", ReviewResult: "tidy",
	})

	router := newReviewTestRouter(store, &stubCompleter{result: "ok"}, accountID)
	req := httptest.NewRequest("POST", "/api/v1/reviews/"+stored.ID.String()+"/share", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("share status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var share ShareResponse
	if err := json.NewDecoder(rec.Body).Decode(&share); err != nil {
		t.Fatalf("decoding share: %v", err)
	}
	if share.ReviewID != stored.ID {
		t.Errorf("share review ID = %s, want %s", share.ReviewID, stored.ID)
	}
	if !strings.Contains(share.URL, "/shared/"+share.Token) {
		t.Errorf("share URL = %q", share.URL)
	}

	/* The shared link works with no session at all */
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/shared/"+share.Token, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("shared fetch status = %d", rec.Code)
	}
	var fetched ReviewResponse
	if err := json.NewDecoder(rec.Body).Decode(&fetched); err != nil {
		t.Fatalf("decoding shared review: %v", err)
	}
	if fetched.ID != stored.ID {
		t.Errorf("shared review ID = %s, want %s", fetched.ID, stored.ID)
	}
}

func TestShareUnownedReviewIs404(t *testing.T) {
	store := newStubReviewStore()
	owner := uuid.New()
	stored, _ := store.CreateReview(context.Background(), &db.CodeReview{
		AccountID: owner, CodeContent: "x", ReviewResult: "r",
	})

	/* Signed in as someone else */
	router := newReviewTestRouter(store, &stubCompleter{result: "ok"}, uuid.New())
	req := httptest.NewRequest("POST", "/api/v1/reviews/"+stored.ID.String()+"/share", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSharedTokenUnknownIs404(t *testing.T) {
	router := newReviewTestRouter(newStubReviewStore(), &stubCompleter{result: "ok"}, uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/shared/bogus-token", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
