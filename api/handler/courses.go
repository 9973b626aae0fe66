package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub-io/learnhub/store"
)

func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.store.ListCourses()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgCourseNotFound})
		return
	}
	course, err := h.store.GetCourse(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

type courseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
}

func (r courseRequest) update() store.CourseUpdate {
	return store.CourseUpdate{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Image:       r.Image,
	}
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req courseRequest
	if !readJSON(c, &req) {
		return
	}
	if req.Title == nil || *req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
		return
	}

	course, err := h.store.CreateCourse(req.update())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgCourseNotFound})
		return
	}
	var req courseRequest
	if !readJSON(c, &req) {
		return
	}

	course, err := h.store.UpdateCourse(id, req.update())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}
