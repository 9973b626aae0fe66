// Package handler implements the request handlers of the file-backed variant.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/learnhub-io/learnhub/store"
)

// maxBodyBytes caps inbound request bodies at 1 MB.
const maxBodyBytes = 1 << 20

// Error messages are part of the API contract, clients match on them.
const (
	msgUserNotFound     = "User not found."
	msgCourseNotFound   = "Course not found."
	msgMissingFields    = "Name, email and password are required."
	msgMissingLogin     = "Email and password are required."
	msgBadCredentials   = "Invalid email or password."
	msgEmailTaken       = "Email already in use."
	msgInvalidProgress  = "Progress must be a number between 0 and 100."
	msgTitleRequired    = "Title is required."
	msgInvalidImageData = "Invalid image data."
	msgBodyTooLarge     = "Request body too large."
	msgInternal         = "Internal server error."
)

type Handler struct {
	store      store.Store
	uploadsDir string
}

func New(st store.Store, uploadsDir string) *Handler {
	return &Handler{
		store:      st,
		uploadsDir: uploadsDir,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readJSON accumulates the request body up to the cap and decodes it into dst.
// An over-cap body aborts the request and closes the connection. Malformed
// JSON leaves dst zero-valued: the handlers see "no fields provided" instead
// of a parse error. Clients depend on that, don't turn it into a 400.
func readJSON(c *gin.Context, dst any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgBodyTooLarge})
		return false
	}
	if len(data) > 0 {
		_ = json.Unmarshal(data, dst)
	}
	return true
}

// idParam parses an integer path segment. A segment that is not a positive
// integer reads as "not found" in this variant, never as a bad request.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// fail maps store errors onto the error taxonomy; anything unexpected is a
// generic 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
	case errors.Is(err, store.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgCourseNotFound})
	case errors.Is(err, store.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": msgEmailTaken})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}
