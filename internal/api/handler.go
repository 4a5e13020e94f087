package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"repair-orders-backend/config"
	"repair-orders-backend/internal/order"
	"repair-orders-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	auth  config.AuthConfig

	// now is swappable so dashboard windows can be pinned in tests.
	now func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, auth config.AuthConfig) *Handler {
	return &Handler{
		store: s,
		auth:  auth,
		now:   time.Now,
	}
}

// respond writes the standard response envelope.
func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"status": status, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": status, "message": message})
}

// respondDomainError maps lifecycle and storage errors onto the error
// taxonomy: validation 400, not found 404, conflict 409, everything else a
// logged 500 with a generic message.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrInvalidStatus), errors.Is(err, order.ErrTransitionNotAllowed):
		respondError(c, http.StatusBadRequest, "Status tidak valid")
	case errors.Is(err, order.ErrEngineerRequired):
		respondError(c, http.StatusBadRequest, "Harap isi semua field")
	case errors.Is(err, order.ErrTerminalState):
		respondError(c, http.StatusConflict, "Pesanan sudah berstatus akhir")
	case errors.Is(err, store.ErrOrderConflict):
		respondError(c, http.StatusConflict, "Pesanan sedang diubah oleh admin lain")
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "Data tidak ditemukan")
	default:
		log.Printf("internal error: %v", err)
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan sistem")
	}
}
