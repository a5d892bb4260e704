/*-------------------------------------------------------------------------
 *
 * sweep.go
 *    Review retention sweeper for the CodeScore server
 *
 * Background service that deletes stored reviews older than the
 * retention window on a fixed interval.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/jobs/sweep.go
 *
 *-------------------------------------------------------------------------
 */

package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/arjunKumbakkara/codeScore/internal/metrics"
)

/* ReviewStore is the persistence surface the sweeper needs */
type ReviewStore interface {
	DeleteExpiredReviews(ctx context.Context, cutoff time.Time) (int64, error)
}

type SweepService struct {
	store    ReviewStore
	interval time.Duration
	maxAge   time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewSweepService(store ReviewStore, interval, maxAge time.Duration) *SweepService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SweepService{
		store:    store,
		interval: interval,
		maxAge:   maxAge,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

/* Start starts the sweep service */
func (s *SweepService) Start() {
	go s.run()
}

/* Stop stops the sweep service */
func (s *SweepService) Stop() {
	s.cancel()
	<-s.done
}

func (s *SweepService) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	/* Run immediately on start */
	s.sweep()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

/* Sweep runs one retention pass and returns the number of reviews removed */
func (s *SweepService) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.maxAge)
	return s.store.DeleteExpiredReviews(ctx, cutoff)
}

func (s *SweepService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	/* Recover from panics in sweep */
	defer func() {
		if r := recover(); r != nil {
			metrics.ErrorWithContext(ctx, "Panic in review sweep", fmt.Errorf("panic: %v", r), nil)
		}
	}()

	removed, err := s.Sweep(ctx)
	if err != nil {
		/* Log error but don't crash - sweep will retry on next interval */
		metrics.RecordSweepRun("error")
		metrics.WarnWithContext(ctx, "Review retention sweep failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	metrics.RecordSweepRun("success")
	if removed > 0 {
		metrics.RecordReviewsSwept(removed)
		metrics.InfoWithContext(ctx, "Review retention sweep completed", map[string]interface{}{
			"removed": removed,
			"max_age": s.maxAge.String(),
		})
	}
}
