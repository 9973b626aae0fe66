package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub-io/learnhub/models"
	"github.com/learnhub-io/learnhub/store"
	"github.com/samber/lo"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !readJSON(c, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}

	user, err := h.store.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Sanitized())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !readJSON(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingLogin})
		return
	}

	// Email matches case-insensitively, the password must match exactly.
	user, err := h.store.FindUserByEmail(req.Email)
	if err != nil || user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgBadCredentials})
		return
	}
	c.JSON(http.StatusOK, user.Sanitized())
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
		return
	}
	user, err := h.store.GetUser(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Sanitized())
}

type userUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateUser overwrites only the fields present in the body. Any caller can
// update any profile here; the file-backed variant carries no authentication.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
		return
	}
	var req userUpdateRequest
	if !readJSON(c, &req) {
		return
	}

	user, err := h.store.UpdateUser(id, store.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Sanitized())
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(users, func(u models.User, _ int) models.User {
		return u.Sanitized()
	}))
}

func (h *Handler) GetUserCourses(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
		return
	}
	user, err := h.store.GetUser(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Courses)
}

type progressRequest struct {
	Progress *float64 `json:"progress"`
}

func (h *Handler) UpdateProgress(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
		return
	}
	courseID, ok := idParam(c, "courseID")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgCourseNotFound})
		return
	}

	var req progressRequest
	if !readJSON(c, &req) {
		return
	}
	if req.Progress == nil || *req.Progress < 0 || *req.Progress > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidProgress})
		return
	}

	if err := h.store.UpdateProgress(userID, courseID, *req.Progress); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
