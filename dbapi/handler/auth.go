package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub-io/learnhub/database"
	"github.com/learnhub-io/learnhub/dbapi/auth"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if !readJSON(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingCredentials})
		return
	}

	ctx := c.Request.Context()
	exists, err := h.store.EmailExists(ctx, req.Email)
	if err != nil {
		internalError(c, err)
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": msgEmailTaken})
		return
	}

	user, err := h.store.CreateUser(ctx, req.Email, req.Name, hashPassword(req.Password))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if !readJSON(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingCredentials})
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgBadCredentials})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	hashed := hashPassword(req.Password)
	if subtle.ConstantTimeCompare([]byte(hashed), []byte(user.PasswordHash)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgBadCredentials})
		return
	}

	token, err := h.sessions.Create(user.ID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout invalidates the presented token. Runs behind RequireSession, so the
// token is known to exist.
func (h *Handler) Logout(c *gin.Context) {
	if token, ok := auth.BearerToken(c.GetHeader("Authorization")); ok {
		h.sessions.Delete(token)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
