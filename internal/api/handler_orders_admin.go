package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-orders-backend/internal/order"
	"repair-orders-backend/internal/store"
)

// GetOrder handles GET /api/admin/orders/:id with both relations
// resolved.
func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.store.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Pesanan tidak ditemukan")
			return
		}
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", o)
}

type transitionRequest struct {
	Status     string  `json:"status"`
	EngineerID *string `json:"engineerId"`
}

// TransitionOrder handles PATCH /api/admin/orders/:id: it validates the
// requested status change against the workflow and persists the new
// status together with any engineer assignment in one conditional update.
func (h *Handler) TransitionOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		respondError(c, http.StatusBadRequest, "Harap isi semua field")
		return
	}

	requested, err := order.ParseStatus(req.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	o, err := h.store.OrderByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Pesanan tidak ditemukan")
			return
		}
		respondDomainError(c, err)
		return
	}

	// A supplied engineer must exist and not be soft-deleted.
	if req.EngineerID != nil {
		if _, err := h.store.EngineerByID(ctx, *req.EngineerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondError(c, http.StatusNotFound, "Teknisi tidak ditemukan")
				return
			}
			respondDomainError(c, err)
			return
		}
	}

	current := order.Status(o.Status)
	hasEngineer := req.EngineerID != nil || o.EngineerID != nil

	decision, err := order.Transition(current, requested, hasEngineer)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// Re-submitting the current state is an idempotent success, unless the
	// request names a different engineer: this endpoint is the only write
	// path for the assignment, so a same-state PATCH must still hand the
	// order over.
	if decision == order.NoOp {
		if req.EngineerID == nil || (o.EngineerID != nil && *o.EngineerID == *req.EngineerID) {
			respond(c, http.StatusOK, "Success", o)
			return
		}
		updated, err := h.store.TransitionOrder(ctx, o.ID, current, current, req.EngineerID)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, "Berhasil mengubah status order", updated)
		return
	}

	updated, err := h.store.TransitionOrder(ctx, o.ID, current, requested, req.EngineerID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Berhasil mengubah status order", updated)
}
