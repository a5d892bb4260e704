/*-------------------------------------------------------------------------
 *
 * admin_handlers.go
 *    Admin maintenance endpoints for the CodeScore server
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/api/admin_handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"net/http"
)

/* Sweeper runs a retention pass on demand */
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

/* AdminHandlers serves maintenance operations behind the admin key */
type AdminHandlers struct {
	sweeper Sweeper
}

func NewAdminHandlers(sweeper Sweeper) *AdminHandlers {
	return &AdminHandlers{sweeper: sweeper}
}

/* TriggerSweep runs the review retention sweep immediately */
func (h *AdminHandlers) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	deleted, err := h.sweeper.Sweep(r.Context())
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "sweep failed", err), requestID))
		return
	}

	respondJSON(w, http.StatusOK, SweepResponse{ReviewsDeleted: deleted})
}
