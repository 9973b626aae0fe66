// Package api serves the file-backed variant: a JSON HTTP API over the file
// store plus static file serving with a client-side-routing fallback.
package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/learnhub-io/learnhub/api/handler"
	"github.com/learnhub-io/learnhub/config"
	"github.com/learnhub-io/learnhub/store"
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	store     store.Store
}

func New(cfg *config.Config, st store.Store) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		store:     st,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	h := handler.New(s.store, s.cfg.UploadsDir)

	api := s.ginEngine.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.GET("/health", h.Health)

	api.GET("/courses", h.ListCourses)
	api.GET("/courses/:id", h.GetCourse)

	api.GET("/user/:id", h.GetUser)
	api.PUT("/user/:id", h.UpdateUser)
	api.PATCH("/user/:id", h.UpdateUser)
	api.GET("/user/:id/courses", h.GetUserCourses)
	api.PUT("/user/:id/course/:courseID/progress", h.UpdateProgress)
	api.POST("/user/:id/profile-picture", h.UploadProfilePicture)

	// The admin surface carries no authentication. See the design notes
	// before exposing this publicly.
	admin := api.Group("/admin")
	admin.POST("/courses", h.CreateCourse)
	admin.PUT("/courses/:id", h.UpdateCourse)
	admin.PATCH("/courses/:id", h.UpdateCourse)
	admin.GET("/users", h.ListUsers)

	s.ginEngine.Static("/uploads", s.cfg.UploadsDir)

	s.ginEngine.NoRoute(s.serveStatic)
}

// serveStatic answers every unmatched route: unknown API paths get a JSON 404,
// other GETs get the static asset or the SPA index so client-side routes keep
// working after a page reload.
func (s *Server) serveStatic(c *gin.Context) {
	reqPath := c.Request.URL.Path

	if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") || c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}

	if strings.Contains(reqPath, "..") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden."})
		return
	}

	file := filepath.Join(s.cfg.WebDir, filepath.Clean("/"+reqPath))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}

	index := filepath.Join(s.cfg.WebDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}
	c.File(index)
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
