package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// dataURIPattern matches base64 image data URIs like "data:image/png;base64,...".
var dataURIPattern = regexp.MustCompile(`^data:image/([a-zA-Z0-9.+-]+);base64,(.+)$`)

type profilePictureRequest struct {
	Image string `json:"image"`
}

// UploadProfilePicture decodes a base64 data URI and writes it as
// user-<id>-<timestamp>.<ext> into the uploads directory, then records the
// public path on the user.
func (h *Handler) UploadProfilePicture(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
		return
	}
	if _, err := h.store.GetUser(id); err != nil {
		fail(c, err)
		return
	}

	var req profilePictureRequest
	if !readJSON(c, &req) {
		return
	}
	m := dataURIPattern.FindStringSubmatch(req.Image)
	if m == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidImageData})
		return
	}
	ext := m[1]
	if ext == "jpeg" {
		ext = "jpg"
	}
	raw, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidImageData})
		return
	}

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		log.Error("failed to create uploads dir", "dir", h.uploadsDir, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}
	name := fmt.Sprintf("user-%d-%d.%s", id, time.Now().Unix(), ext)
	if err := os.WriteFile(filepath.Join(h.uploadsDir, name), raw, 0o644); err != nil {
		log.Error("failed to write profile picture", "file", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	url := "/uploads/" + name
	if _, err := h.store.SetProfilePicture(id, url); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
