package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub-io/learnhub/database"
	"github.com/learnhub-io/learnhub/dbapi/auth"
)

func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.store.ListCourses(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	course, err := h.store.GetCourse(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgCourseNotFound})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) ListLevels(c *gin.Context) {
	levels, err := h.store.ListLevels(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

func (h *Handler) GetLevel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	level, err := h.store.GetLevel(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgLevelNotFound})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, level)
}

type submissionRequest struct {
	LevelID int64  `json:"levelId"`
	Code    string `json:"code"`
}

func (h *Handler) CreateSubmission(c *gin.Context) {
	var req submissionRequest
	if !readJSON(c, &req) {
		return
	}
	if req.LevelID <= 0 || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingSubmission})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetLevel(ctx, req.LevelID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgLevelNotFound})
			return
		}
		internalError(c, err)
		return
	}

	submission, err := h.store.CreateSubmission(ctx, auth.UserID(c), req.LevelID, req.Code)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

func (h *Handler) ListSubmissions(c *gin.Context) {
	submissions, err := h.store.ListSubmissionsForUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *Handler) ListKnowledge(c *gin.Context) {
	articles, err := h.store.ListArticles(c.Request.Context(), c.Query("q"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}
