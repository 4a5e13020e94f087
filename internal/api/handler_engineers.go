package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-orders-backend/internal/model"
	"repair-orders-backend/internal/store"
)

type engineerRequest struct {
	Name  string `json:"name" binding:"required"`
	Field string `json:"field" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// ListEngineers handles GET /api/admin/engineers: active engineers
// ordered by name, each with its historical order count.
func (h *Handler) ListEngineers(c *gin.Context) {
	engineers, err := h.store.Engineers(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", engineers)
}

// CreateEngineer handles POST /api/admin/engineers.
func (h *Handler) CreateEngineer(c *gin.Context) {
	var req engineerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Harap isi semua field")
		return
	}

	engineer := &model.Engineer{Name: req.Name, Field: req.Field, Phone: req.Phone}
	if err := h.store.CreateEngineer(c.Request.Context(), engineer); err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Berhasil menambahkan teknisi", engineer)
}

// GetEngineer handles GET /api/admin/engineers/:id with the engineer's
// orders included. Soft-deleted engineers read as not found.
func (h *Handler) GetEngineer(c *gin.Context) {
	engineer, err := h.store.EngineerWithOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Teknisi tidak ditemukan")
			return
		}
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", engineer)
}

// UpdateEngineer handles PUT /api/admin/engineers/:id.
func (h *Handler) UpdateEngineer(c *gin.Context) {
	var req engineerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Harap isi semua field")
		return
	}

	engineer, err := h.store.UpdateEngineer(c.Request.Context(), c.Param("id"), req.Name, req.Field, req.Phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Teknisi tidak ditemukan")
			return
		}
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Berhasil mengedit teknisi", engineer)
}

// DeleteEngineer handles DELETE /api/admin/engineers/:id. The engineer is
// soft-deleted so historical orders keep their reference.
func (h *Handler) DeleteEngineer(c *gin.Context) {
	engineer, err := h.store.SoftDeleteEngineer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Teknisi tidak ditemukan")
			return
		}
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Berhasil menghapus teknisi", engineer)
}
