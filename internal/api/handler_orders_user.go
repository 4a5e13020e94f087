package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-orders-backend/internal/model"
	"repair-orders-backend/internal/mw"
	"repair-orders-backend/internal/order"
	"repair-orders-backend/internal/store"
)

type createOrderRequest struct {
	Location    string   `json:"location" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
	Brand       string   `json:"brand" binding:"required"`
	Description string   `json:"desc" binding:"required"`
	Picture     string   `json:"picture"`
}

// CreateOrder handles POST /api/user/orders: a customer places a new
// repair order, which always starts in the Requested state with no
// engineer.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := mw.PrincipalID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Harap isi semua field")
		return
	}

	o := &model.Order{
		UserID:      userID,
		Location:    req.Location,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Brand:       req.Brand,
		Description: req.Description,
		Picture:     req.Picture,
		Status:      string(order.StatusRequested),
	}
	if err := h.store.CreateOrder(c.Request.Context(), o); err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", o)
}

// ListMyOrders handles GET /api/user/orders: the caller's orders, newest
// first, with the assigned engineer resolved.
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := mw.PrincipalID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := h.store.OrdersByUser(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", orders)
}

// GetMyOrder handles GET /api/user/orders/:id. The lookup is scoped to
// the caller, so another user's order reads as not found.
func (h *Handler) GetMyOrder(c *gin.Context) {
	userID, ok := mw.PrincipalID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	o, err := h.store.OrderForUser(c.Request.Context(), userID, c.Param("id"))
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
