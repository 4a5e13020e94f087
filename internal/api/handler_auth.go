package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"repair-orders-backend/internal/mw"
	"repair-orders-backend/internal/store"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// Login authenticates an admin or a user by email and password and issues
// a bearer token carrying the principal's id and role.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Harap isi semua field")
		return
	}

	var (
		id, name, hash string
		err            error
	)
	switch req.Role {
	case mw.RoleAdmin:
		admin, lookupErr := h.store.AdminByEmail(c.Request.Context(), req.Email)
		if lookupErr == nil {
			id, name, hash = admin.ID, admin.Name, admin.Password
		}
		err = lookupErr
	case mw.RoleUser:
		user, lookupErr := h.store.UserByEmail(c.Request.Context(), req.Email)
		if lookupErr == nil {
			id, name, hash = user.ID, user.Name, user.Password
		}
		err = lookupErr
	}

	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusUnauthorized, "Email atau password salah")
		return
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "Email atau password salah")
		return
	}

	token, err := mw.SignToken(h.auth.JWTSecret, id, req.Role, h.auth.TokenTTL)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", loginResponse{
		Token: token,
		Role:  req.Role,
		ID:    id,
		Name:  name,
	})
}
